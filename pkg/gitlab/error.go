package gitlab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sgaunet/issue-manager/pkg/tracker"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

// classify maps an error returned by client-go to a *tracker.Error.
// Context errors are returned wrapped but untyped.
func classify(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", op, ctxErr)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}

	var te *tracker.Error
	if errors.As(err, &te) {
		return te
	}

	var errResp *gitlab.ErrorResponse
	if errors.As(err, &errResp) {
		log.Warn("gitlab request failed", "op", op, "status", statusOf(errResp))
		return tracker.ClassifyErrorBody(errResp.Body)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return tracker.MalformedError(err)
	}

	return tracker.TransportError(err)
}

func statusOf(e *gitlab.ErrorResponse) int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

func emptyIssueError() *tracker.Error {
	return tracker.NewError(tracker.KindMalformedResponse, "unable to parse the response", "empty issue")
}
