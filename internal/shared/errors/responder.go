package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type of problem responses.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper turns a domain or application error into a problem. It reports
// false when it does not recognise err.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes problem responses. Mappers are tried in order before the
// fallback, which treats unknown errors as internal.
type Responder struct {
	baseURI string
	mappers []ErrorMapper
}

// NewResponder builds a responder. A non-empty baseURI is prefixed to
// relative problem types.
func NewResponder(baseURI string, mappers ...ErrorMapper) *Responder {
	return &Responder{baseURI: baseURI, mappers: mappers}
}

// DefaultResponder has no mappers and relative problem types.
var DefaultResponder = NewResponder("")

// With returns a copy that also tries mappers.
func (r *Responder) With(mappers ...ErrorMapper) *Responder {
	combined := append(append([]ErrorMapper(nil), r.mappers...), mappers...)
	return &Responder{baseURI: r.baseURI, mappers: combined}
}

// Respond writes problem and aborts the handler chain.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.baseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.baseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	if problem.Status == 0 {
		problem.Status = http.StatusInternalServerError
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, problem)
}

// RespondError maps err and writes the result.
func (r *Responder) RespondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	r.Respond(c, r.Map(err))
}

// Map resolves err to a problem without writing it.
func (r *Responder) Map(err error) ProblemDetail {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem
	}
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			return problem
		}
	}
	return ErrInternal.WithDetail(err.Error())
}

// Sentinel maps every error matching target to template, keeping err's text as detail.
func Sentinel(target error, template ProblemDetail) ErrorMapper {
	return func(err error) (ProblemDetail, bool) {
		if errors.Is(err, target) {
			return template.WithDetail(err.Error()), true
		}
		return ProblemDetail{}, false
	}
}

// Respond writes problem with the default responder.
func Respond(c *gin.Context, problem ProblemDetail) {
	DefaultResponder.Respond(c, problem)
}

// HTTPStatusFromError returns the status a problem error carries, or 500.
func HTTPStatusFromError(err error) int {
	var problem ProblemDetail
	if errors.As(err, &problem) && problem.Status != 0 {
		return problem.Status
	}
	return http.StatusInternalServerError
}
