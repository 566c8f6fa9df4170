package exceptions

import (
	"fmt"

	"clinical-service/internal/pkg/constvars"
)

var (
	// Invalid argument
	ErrEmptyIdentifier = func(resourceType string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, KindInvalidArgument, constvars.ErrClientInvalidIdentifier, fmt.Sprintf(constvars.ErrDevEmptyIdentifier, resourceType))
	}
	ErrUnsupportedResourceKind = func(resourceType string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, KindInvalidArgument, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevUnsupportedResourceKind, resourceType))
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, KindInvalidArgument, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, KindInvalidArgument, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrEncounterPeriodStartMissing = func() *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, KindInvalidArgument, constvars.ErrClientInvalidPeriod, constvars.ErrDevEncounterPeriodStartMissing)
	}
	ErrEncounterPeriodInvalid = func(start, end string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, KindInvalidArgument, constvars.ErrClientInvalidPeriod, fmt.Sprintf(constvars.ErrDevEncounterPeriodInvalid, end, start))
	}

	// Not found
	ErrIdentifierNotResolved = func(resourceType string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, KindNotFound, fmt.Sprintf(constvars.ErrClientResourceNotFound, resourceType), fmt.Sprintf(constvars.ErrDevIdentifierNotResolved, resourceType))
	}
	ErrFHIRResourceNotFound = func(err error, resourceType, id string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, KindNotFound, fmt.Sprintf(constvars.ErrClientResourceNotFound, resourceType), fmt.Sprintf(constvars.ErrDevFHIRResourceNotFound, resourceType, id))
	}

	// Backend
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindBackendError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, KindBackendError, constvars.ErrClientUpstreamUnavailable, constvars.ErrDevSendHTTPRequest)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnprocessableEntity, KindAssemblyInconsistency, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotMarshalJSON)
	}
	ErrCreateFHIRResource = func(err error, resourceType string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, KindBackendError, constvars.ErrClientUpstreamUnavailable, fmt.Sprintf(constvars.ErrDevFHIRCreateResource, resourceType))
	}
	ErrGetFHIRResource = func(err error, resourceType string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, KindBackendError, constvars.ErrClientUpstreamUnavailable, fmt.Sprintf(constvars.ErrDevFHIRGetResource, resourceType))
	}
	ErrSearchFHIRResource = func(err error, resourceType string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, KindBackendError, constvars.ErrClientUpstreamUnavailable, fmt.Sprintf(constvars.ErrDevFHIRSearchResource, resourceType))
	}
	ErrDecodeResponse = func(err error, resourceType string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, KindBackendError, constvars.ErrClientUpstreamUnavailable, fmt.Sprintf(constvars.ErrDevFHIRDecodeResource, resourceType))
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, KindBackendError, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}

	// Auth
	ErrTokenMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, KindInvalidArgument, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenMissing)
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, KindInvalidArgument, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenInvalidOrExpired)
	}
	ErrRoleNotAllowed = func(method, path string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusForbidden, KindInvalidArgument, constvars.ErrClientNotAuthorized, fmt.Sprintf(constvars.ErrDevAuthRoleNotAllowed, method, path))
	}
	ErrMissingRequestID = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindUnknown, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMissingRequestID)
	}

	// Default Server
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindUnknown, constvars.ErrClientCannotProcessRequest, constvars.ErrDevServerProcess)
	}
)
