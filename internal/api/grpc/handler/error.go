package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/identity-merge/internal/model"
)

func handleError(err error) error {
	var agg *model.AggregateError

	switch {
	case errors.As(err, &agg):
		return status.Error(codes.Aborted, agg.Error())
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, "account not found")
	case errors.Is(err, model.ErrAuthentication), errors.Is(err, model.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, model.ErrTransactionTimeout), errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "merge timed out")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
