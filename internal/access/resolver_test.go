package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"unidash/internal/models"
)

func TestAdminSeesEverything(t *testing.T) {
	records := []models.Course{
		{Code: "CS101", DepartmentCode: "CS"},
		{Code: "MTH201", DepartmentCode: "MATH"},
		{Code: "XX000", DepartmentCode: ""},
	}

	for _, r := range records {
		assert.True(t, IsVisible(AdminScope, r))
	}
	assert.Len(t, Filter(AdminScope, records), 3)
}

func TestLecturerRestrictedToAssignedDepartments(t *testing.T) {
	scope := Scope{Role: models.RoleLecturer, Codes: []string{"CS"}}

	assert.True(t, IsVisible(scope, models.Course{DepartmentCode: "CS"}))
	assert.False(t, IsVisible(scope, models.Course{DepartmentCode: "MATH"}))
}

func TestLecturerWithEmptyScopeSeesNothing(t *testing.T) {
	scope := Scope{Role: models.RoleLecturer}

	records := []models.Course{
		{DepartmentCode: "CS"},
		{DepartmentCode: "MATH"},
	}
	assert.False(t, IsVisible(scope, records[0]))
	assert.Empty(t, Filter(scope, records))
}

func TestUnresolvableAttributionNeverVisibleToLecturer(t *testing.T) {
	scope := Scope{Role: models.RoleLecturer, Codes: []string{"CS", ""}}

	// A record with no resolvable code stays hidden even when the scope
	// accidentally contains an empty string.
	assert.False(t, IsVisible(scope, models.Course{DepartmentCode: ""}))
}

func TestFilterPreservesOrder(t *testing.T) {
	scope := Scope{Role: models.RoleLecturer, Codes: []string{"CS", "EE"}}

	records := []models.Course{
		{Code: "EE300", DepartmentCode: "EE"},
		{Code: "MTH201", DepartmentCode: "MATH"},
		{Code: "CS101", DepartmentCode: "CS"},
		{Code: "EE110", DepartmentCode: "EE"},
	}

	got := Filter(scope, records)
	if assert.Len(t, got, 3) {
		assert.Equal(t, "EE300", got[0].Code)
		assert.Equal(t, "CS101", got[1].Code)
		assert.Equal(t, "EE110", got[2].Code)
	}
}

func TestCourseFallbackAttribution(t *testing.T) {
	scope := Scope{Role: models.RoleLecturer, Codes: []string{"CS"}}

	// Lectures and assignments inherit the department of their course.
	lec := models.Lecture{Course: models.Course{DepartmentCode: "CS"}}
	assert.True(t, IsVisible(scope, lec))

	asg := models.Assignment{Course: models.Course{DepartmentCode: "MATH"}}
	assert.False(t, IsVisible(scope, asg))
}

func TestLecturerScopeIgnoresInactiveAssignments(t *testing.T) {
	scope := LecturerScope([]models.DepartmentAssignment{
		{DepartmentCode: "CS", Active: true},
		{DepartmentCode: "MATH", Active: false},
	})

	assert.Equal(t, []string{"CS"}, scope.Codes)
	assert.True(t, scope.Allows("CS"))
	assert.False(t, scope.Allows("MATH"))
}
