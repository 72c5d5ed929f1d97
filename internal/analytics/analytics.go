package analytics

import "math"

type Overview struct {
	TotalUsers            int64   `json:"totalUsers"`
	ActiveUsers           int64   `json:"activeUsers"`
	TotalEnrollments      int64   `json:"totalEnrollments"`
	CompletedCourses      int64   `json:"completedCourses"`
	OverallCompletionRate float64 `json:"overallCompletionRate"`
}

type CoursePerformance struct {
	CourseID             string  `json:"courseId"`
	CourseTitle          string  `json:"courseTitle"`
	TotalEnrollments     int64   `json:"totalEnrollments"`
	CompletedEnrollments int64   `json:"completedEnrollments"`
	AverageProgress      float64 `json:"averageProgress"`
	CompletionRate       float64 `json:"completionRate"`
}

type PlantPerformance struct {
	PlantID              string  `json:"plantId"`
	PlantName            string  `json:"plantName"`
	TotalUsers           int64   `json:"totalUsers"`
	TotalEnrollments     int64   `json:"totalEnrollments"`
	CompletedEnrollments int64   `json:"completedEnrollments"`
	AverageProgress      float64 `json:"averageProgress"`
	CompletionRate       float64 `json:"completionRate"`
}

// QuestionAnalytics is kept for response compatibility; quiz scoring is not
// recorded so the list is always empty.
type QuestionAnalytics struct {
	QuestionID  string  `json:"questionId"`
	CourseID    string  `json:"courseId"`
	Attempts    int64   `json:"attempts"`
	CorrectRate float64 `json:"correctRate"`
}

// ComplianceRecord counts, per plant, the users whose enrollments are all completed.
// Users without enrollments are not compliant.
type ComplianceRecord struct {
	PlantID        string  `json:"plantId"`
	PlantName      string  `json:"plantName"`
	TotalUsers     int64   `json:"totalUsers"`
	CompliantUsers int64   `json:"compliantUsers"`
	ComplianceRate float64 `json:"complianceRate"`
}

type Report struct {
	Overview           Overview            `json:"overview"`
	CoursePerformance  []CoursePerformance `json:"coursePerformance"`
	PlantPerformance   []PlantPerformance  `json:"plantPerformance"`
	QuestionAnalytics  []QuestionAnalytics `json:"questionAnalytics"`
	ComplianceTracking []ComplianceRecord  `json:"complianceTracking"`
}

func emptyReport() *Report {
	return &Report{
		CoursePerformance:  []CoursePerformance{},
		PlantPerformance:   []PlantPerformance{},
		QuestionAnalytics:  []QuestionAnalytics{},
		ComplianceTracking: []ComplianceRecord{},
	}
}

type DashboardStats struct {
	PlantID               string  `json:"plantId"`
	TotalEnrollments      int64   `json:"totalEnrollments"`
	CompletedEnrollments  int64   `json:"completedEnrollments"`
	InProgressEnrollments int64   `json:"inProgressEnrollments"`
	CompletionRate        float64 `json:"completionRate"`
}

// Percent returns part/whole*100 rounded to two decimals, and 0 for an empty whole.
func Percent(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return Round2(float64(part) / float64(whole) * 100)
}

// Mean returns sum/count rounded to two decimals, and 0 for an empty group.
func Mean(sum float64, count int64) float64 {
	if count <= 0 {
		return 0
	}
	return Round2(sum / float64(count))
}

func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
