package suggestion

import "resume-analyzer/internal/domain/feature"

const (
	MoreTechnicalSkills = "Add more technical skills (aim for 5+)"
	MoreSoftSkills      = "Include more soft skills"
	MoreProjects        = "Add more project experiences"
	EducationDetails    = "Include education details"
)

const (
	minTechnicalSkills = 5
	minSoftSkills      = 3
	minProjects        = 2
)

type Input struct {
	TechnicalSkills int
	SoftSkills      int
	ProjectCount    int
	EducationLevel  int
}

func FromFeatures(v feature.Vector, technical, soft []string) Input {
	return Input{
		TechnicalSkills: len(technical),
		SoftSkills:      len(soft),
		ProjectCount:    v.ProjectCount(),
		EducationLevel:  v.EducationLevel(),
	}
}

// Generate evaluates the rules in a fixed order. The result is never nil.
func Generate(in Input) []string {
	out := make([]string, 0, 4)
	if in.TechnicalSkills < minTechnicalSkills {
		out = append(out, MoreTechnicalSkills)
	}
	if in.SoftSkills < minSoftSkills {
		out = append(out, MoreSoftSkills)
	}
	if in.ProjectCount < minProjects {
		out = append(out, MoreProjects)
	}
	if in.EducationLevel == 0 {
		out = append(out, EducationDetails)
	}
	return out
}
