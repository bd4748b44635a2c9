package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/campus"
	"campusvoice/internal/shared/constants"
	"campusvoice/internal/shared/errors"
	"campusvoice/internal/shared/logger"
	"campusvoice/internal/shared/utils"
)

// IdentityMiddleware resolves the caller named by the gateway headers
// against the campus directory.
type IdentityMiddleware struct {
	students    campus.StudentRepository
	authorities authority.Repository
	logger      logger.Interface
}

func NewIdentityMiddleware(students campus.StudentRepository, authorities authority.Repository, logger logger.Interface) *IdentityMiddleware {
	return &IdentityMiddleware{
		students:    students,
		authorities: authorities,
		logger:      logger,
	}
}

// Resolve loads whichever caller header is present. Requests without one
// pass through anonymously; Require* decides whether that is acceptable.
func (m *IdentityMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		studentHeader := strings.TrimSpace(c.GetHeader(constants.HeaderXStudentID))
		authorityHeader := strings.TrimSpace(c.GetHeader(constants.HeaderXAuthorityID))

		if studentHeader != "" && authorityHeader != "" {
			utils.ErrorResponseWithError(c, errors.NewBadRequestError("send either a student or an authority identity, not both"))
			c.Abort()
			return
		}

		switch {
		case studentHeader != "":
			if err := m.resolveStudent(c, studentHeader); err != nil {
				utils.ErrorResponseWithError(c, err)
				c.Abort()
				return
			}
		case authorityHeader != "":
			if err := m.resolveAuthority(c, authorityHeader); err != nil {
				utils.ErrorResponseWithError(c, err)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

func (m *IdentityMiddleware) resolveStudent(c *gin.Context, rollNo string) error {
	s, err := m.students.GetByRollNo(c.Request.Context(), rollNo)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return errors.ErrUnknownCaller
		}
		m.logger.Errorw("failed to resolve student caller", "roll_no", rollNo, "error", err)
		return err
	}
	if !s.IsActive() {
		return errors.ErrInactiveAccount
	}
	c.Set(constants.ContextKeyStudent, s.RollNo())
	return nil
}

func (m *IdentityMiddleware) resolveAuthority(c *gin.Context, raw string) error {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return errors.ErrUnknownCaller
	}
	a, err := m.authorities.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.IsNotFoundError(err) {
			return errors.ErrUnknownCaller
		}
		m.logger.Errorw("failed to resolve authority caller", "authority_id", id, "error", err)
		return err
	}
	if !a.IsActive() {
		return errors.ErrInactiveAccount
	}
	c.Set(constants.ContextKeyAuthority, a.ID())
	return nil
}

// RequireStudent rejects requests not made by a resolved student.
func RequireStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := StudentID(c); !ok {
			utils.ErrorResponseWithError(c, errors.ErrMissingIdentity)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAuthority rejects requests not made by a resolved authority.
func RequireAuthority() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := AuthorityID(c); !ok {
			utils.ErrorResponseWithError(c, errors.ErrMissingIdentity)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireCaller accepts either kind of caller.
func RequireCaller() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, isStudent := StudentID(c)
		_, isAuthority := AuthorityID(c)
		if !isStudent && !isAuthority {
			utils.ErrorResponseWithError(c, errors.ErrMissingIdentity)
			c.Abort()
			return
		}
		c.Next()
	}
}

func StudentID(c *gin.Context) (string, bool) {
	v, exists := c.Get(constants.ContextKeyStudent)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func AuthorityID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(constants.ContextKeyAuthority)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
