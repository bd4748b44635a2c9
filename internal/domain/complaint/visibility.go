package complaint

import (
	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/campus"
	vo "campusvoice/internal/domain/complaint/valueobjects"
)

// Viewer is a student looking at the complaint feed.
type Viewer struct {
	StudentID string
	Profile   campus.Profile
}

func ViewerOf(s *campus.Student) Viewer {
	return Viewer{StudentID: s.RollNo(), Profile: s.Profile()}
}

// EffectiveDepartmentID is the department a department-local complaint
// belongs to: the routed department when set, otherwise the submitter's.
func (c *Complaint) EffectiveDepartmentID() uint {
	if c.departmentID != nil {
		return *c.departmentID
	}
	return c.submitter.DepartmentID
}

// IsVisibleTo applies the feed rules for a student. Closed complaints are
// hidden unless includeClosed is set; the submitter always sees their own
// complaint otherwise.
func (c *Complaint) IsVisibleTo(v Viewer, includeClosed bool) bool {
	if c.status.IsClosed() && !includeClosed {
		return false
	}
	if v.StudentID == c.submitterID {
		return true
	}
	if c.visibility == vo.VisibilityPrivate {
		return false
	}
	if gender, ok := c.category.HostelGender(); ok {
		if !v.Profile.IsHosteller() || v.Profile.Gender != gender {
			return false
		}
	}
	if c.isDepartmentLocal() && v.Profile.DepartmentID != c.EffectiveDepartmentID() {
		return false
	}
	return true
}

// isDepartmentLocal covers Department visibility and Public complaints of
// the Department category that stayed inside the submitter's department.
func (c *Complaint) isDepartmentLocal() bool {
	if c.visibility == vo.VisibilityDepartment {
		return true
	}
	return c.category == vo.CategoryDepartment && !c.isCrossDepartment
}

// RedactIdentity decides what of the submitter an authority may see. Only
// an Admin sees a regular complaint's submitter; once the complaint is
// marked as spam the assigned authority sees it too.
func (c *Complaint) RedactIdentity(identity campus.Identity, viewer *authority.Authority) campus.Identity {
	if viewer == nil || !viewer.IsActive() {
		return identity.Redact()
	}
	if viewer.IsAdmin() {
		return identity
	}
	if c.isMarkedAsSpam && viewer.ID() == c.assignedAuthorityID {
		return identity
	}
	return identity.Redact()
}
