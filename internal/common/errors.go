package common

import (
	"errors"
	"fmt"
)

// Business logic errors
var (
	// General errors
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")

	// Listing errors
	ErrListingNotFound    = errors.New("annonce introuvable")
	ErrListingNotActive   = errors.New("cette annonce n'est pas active")
	ErrCategoryNotFound   = errors.New("catégorie introuvable")
	ErrListingLimit       = errors.New("limite d'annonces atteinte pour votre abonnement")
	ErrImageLimit         = errors.New("nombre maximum d'images dépassé pour votre abonnement")
	ErrAlreadyFeatured    = errors.New("cette annonce est déjà mise en avant")
	ErrFeaturedNotAllowed = errors.New("votre abonnement ne permet pas de mettre des annonces en avant")

	// Favorite errors
	ErrFavoriteExists   = errors.New("déjà dans les favoris")
	ErrFavoriteNotFound = errors.New("favori introuvable")

	// Messaging errors
	ErrSelfContact = errors.New("vous ne pouvez pas contacter votre propre annonce")

	// Review errors
	ErrSelfReview   = errors.New("vous ne pouvez pas vous évaluer vous-même")
	ErrReviewExists = errors.New("vous avez déjà laissé un avis pour cette transaction")

	// Report errors
	ErrReportLimit = errors.New("limite de signalements quotidienne atteinte")

	// Auth errors
	ErrInvalidCredentials = errors.New("email ou mot de passe incorrect")
	ErrUserNotFound       = errors.New("utilisateur introuvable")
	ErrUserAlreadyExists  = errors.New("un compte existe déjà avec cet email")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")

	// Payment errors
	ErrTransactionNotFound = errors.New("transaction introuvable")
	ErrPaymentFailed       = errors.New("le paiement a échoué")
)

// QuotaError reports a featured-listing quota violation with enough
// detail for the client to render an upgrade prompt.
type QuotaError struct {
	Current      int
	Limit        int
	RequiredTier string
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("quota d'annonces en avant atteint (%d/%d)", e.Current, e.Limit)
}

// AsQuotaError unwraps a QuotaError from an error chain
func AsQuotaError(err error) (*QuotaError, bool) {
	var qe *QuotaError
	if errors.As(err, &qe) {
		return qe, true
	}
	return nil, false
}
