package analysis

type Metrics struct {
	SkillCount     int     `json:"skill_count"`
	TechSkillRatio float64 `json:"tech_skill_ratio"`
	SoftSkillRatio float64 `json:"soft_skill_ratio"`
}

type Result struct {
	OverallScore    int      `json:"overall_score"`
	TechnicalSkills []string `json:"technical_skills"`
	SoftSkills      []string `json:"soft_skills"`
	Metrics         Metrics  `json:"metrics"`
	Suggestions     []string `json:"suggestions"`
}

// ComputeMetrics derives the skill metrics. Ratios are 0 when the lexicon
// category is empty.
func ComputeMetrics(technical, soft []string, technicalTotal, softTotal int) Metrics {
	m := Metrics{SkillCount: len(technical) + len(soft)}
	if technicalTotal > 0 {
		m.TechSkillRatio = float64(len(technical)) / float64(technicalTotal)
	}
	if softTotal > 0 {
		m.SoftSkillRatio = float64(len(soft)) / float64(softTotal)
	}
	return m
}
