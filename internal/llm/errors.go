package llm

import (
	"errors"
	"net/http"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// grpcToHTTP maps the gRPC codes the Gemini API returns onto HTTP statuses
var grpcToHTTP = map[codes.Code]int{
	codes.InvalidArgument:    http.StatusBadRequest,
	codes.FailedPrecondition: http.StatusBadRequest,
	codes.OutOfRange:         http.StatusBadRequest,
	codes.Unauthenticated:    http.StatusUnauthorized,
	codes.PermissionDenied:   http.StatusForbidden,
	codes.NotFound:           http.StatusNotFound,
	codes.AlreadyExists:      http.StatusConflict,
	codes.Aborted:            http.StatusConflict,
	codes.ResourceExhausted:  http.StatusTooManyRequests,
	codes.Canceled:           499,
	codes.Unimplemented:      http.StatusNotImplemented,
	codes.Unavailable:        http.StatusServiceUnavailable,
	codes.DeadlineExceeded:   http.StatusGatewayTimeout,
	codes.Internal:           http.StatusInternalServerError,
	codes.Unknown:            http.StatusInternalServerError,
	codes.DataLoss:           http.StatusInternalServerError,
}

// StatusCode extracts the HTTP status the provider answered with.
// It returns 0 when err carries no provider status.
func StatusCode(err error) int {
	if err == nil {
		return 0
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code != 0 {
		return gerr.Code
	}

	var aerr *apierror.APIError
	if errors.As(err, &aerr) {
		if code := aerr.HTTPCode(); code > 0 {
			return code
		}
		if code, ok := grpcToHTTP[aerr.GRPCStatus().Code()]; ok {
			return code
		}
	}

	if st, ok := status.FromError(err); ok && st.Code() != codes.OK {
		if code, ok := grpcToHTTP[st.Code()]; ok {
			return code
		}
	}

	return 0
}
