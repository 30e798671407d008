package services

import "github.com/Fenet-Ab/fen-one-shop/pkg/apperr"

var (
	ErrEmailTaken         = apperr.New(apperr.Validation, "email already registered")
	ErrInvalidCredentials = apperr.New(apperr.Unauthorized, "invalid credentials")
	ErrUserNotFound       = apperr.New(apperr.NotFound, "user not found")

	ErrCategoryExists      = apperr.New(apperr.Validation, "category already exists")
	ErrCategoryInUse       = apperr.New(apperr.Validation, "category in use")
	ErrCategoryNotFound    = apperr.New(apperr.NotFound, "category not found")
	ErrInvalidCategoryName = apperr.New(apperr.Validation, "category name is required")

	ErrMaterialNotFound = apperr.New(apperr.NotFound, "material not found")
	ErrInvalidPrice     = apperr.New(apperr.Validation, "price must not be negative")
	ErrInvalidMaterial  = apperr.New(apperr.Validation, "title and categoryId are required")

	ErrCartEmpty = apperr.New(apperr.Validation, "cart is empty")

	ErrOrderNotFound = apperr.New(apperr.NotFound, "order not found")
	ErrNotOrderOwner = apperr.New(apperr.Forbidden, "not your order")
	ErrOrderPaid     = apperr.New(apperr.Forbidden, "paid orders cannot be deleted")
	ErrInvalidStatus = apperr.New(apperr.Validation, "status is required")
	ErrPaymentInit   = apperr.New(apperr.Upstream, "payment initialization failed")
	ErrHasPaidOrders = apperr.New(apperr.Validation, "account has paid orders")
	ErrAlreadyPaid   = apperr.New(apperr.Validation, "order is already paid")

	ErrInvalidRating  = apperr.New(apperr.Validation, "rating must be between 1 and 5")
	ErrRatingNotFound = apperr.New(apperr.NotFound, "rating not found")

	ErrNotificationNotFound = apperr.New(apperr.NotFound, "notification not found")
	ErrEmptyMessage         = apperr.New(apperr.Validation, "message is required")
)

// invalidImage reports a rejected upload as a validation error.
func invalidImage(cause error) error {
	return apperr.New(apperr.Validation, cause.Error())
}
