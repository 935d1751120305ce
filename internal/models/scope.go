package models

// ScopeCode resolves the department attribution used for lecturer access
// filtering. Entities with an explicit department code return it directly;
// entities attributed through a course fall back to the course's code. An
// empty result means the record is never visible to a restricted lecturer.

func (c Course) ScopeCode() string { return c.DepartmentCode }

func (s Student) ScopeCode() string { return s.DepartmentCode }

func (l Lecture) ScopeCode() string { return l.Course.DepartmentCode }

func (a Assignment) ScopeCode() string { return a.Course.DepartmentCode }

func (e Exam) ScopeCode() string { return e.Course.DepartmentCode }

func (f FinancialRecord) ScopeCode() string {
	if f.DepartmentCode != "" {
		return f.DepartmentCode
	}
	return f.Student.DepartmentCode
}

func (a AttendanceRecord) ScopeCode() string { return a.Course.DepartmentCode }
