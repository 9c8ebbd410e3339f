// Package validator builds declarative input checks out of small Rule values.
//
// Each Rule pairs a Check func with the ValidationError reported when it
// fails. Apply evaluates every rule and aggregates failures into
// ValidationErrors, which implements error and matches ErrValidationFailed:
//
//	err := validator.Apply(
//		validator.RequiredString("email", in.Email),
//		validator.ValidEmail("email", in.Email),
//		validator.When(in.Role != nil, validator.OneOf("role", role, allowed)),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//		// report verrs.Fields()
//	}
package validator
