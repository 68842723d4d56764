package seed

import (
	"talentflow/internal/models"
	"talentflow/internal/store"
)

func f64(v float64) *float64 { return &v }

// buildAssessment returns one seeded assessment for the job, cycling
// through the question templates. A question flagged conditional is wired
// to the answer of the question directly before it.
func buildAssessment(st *store.Store, index int, jobID string) models.Assessment {
	templates := []func(st *store.Store) []templateQuestion{
		engineeringTemplate,
		productTemplate,
		dataTemplate,
	}
	spec := templates[index%len(templates)](st)

	questions := make([]models.Question, len(spec))
	for i, tq := range spec {
		q := tq.question
		if tq.conditionalOnPrevious && i > 0 {
			q = q.WithConditional(questions[i-1].ID, tq.expectedValue)
		}
		questions[i] = q
	}

	return models.Assessment{
		JobID: jobID,
		Sections: []models.Section{{
			ID:          st.NewID("section"),
			Title:       "Core Fit",
			Description: "Evaluate alignment and experience across focus areas.",
			Questions:   questions,
		}},
		UpdatedAt: st.Now(),
	}
}

type templateQuestion struct {
	question              models.Question
	conditionalOnPrevious bool
	expectedValue         string
}

func engineeringTemplate(st *store.Store) []templateQuestion {
	return []templateQuestion{
		{question: models.NewChoiceQuestion(st.NewID("q"), "How many years of professional experience do you have with distributed systems?", models.SingleChoice, true,
			models.ChoiceSettings{Options: []string{"0-1", "2-3", "4-5", "6+"}})},
		{question: models.NewTextQuestion(st.NewID("q"), "Describe a challenging performance issue you solved.", models.ShortText, true,
			models.TextSettings{MaxLength: 280})},
		{question: models.NewNumericQuestion(st.NewID("q"), "How many people have you mentored directly?", false,
			models.NumericSettings{Min: f64(0), Max: f64(50)})},
		{question: models.NewChoiceQuestion(st.NewID("q"), "Which build tools have you used in production?", models.MultiChoice, true,
			models.ChoiceSettings{Options: []string{"Make", "Bazel", "Gradle", "Webpack", "Vite"}, MaxSelections: 3})},
		{question: models.NewTextQuestion(st.NewID("q"), "Share a system design you are proud of.", models.LongText, true,
			models.TextSettings{})},
		{question: models.NewChoiceQuestion(st.NewID("q"), "Are you comfortable working across time zones?", models.SingleChoice, true,
			models.ChoiceSettings{Options: []string{"Yes", "No"}})},
		{question: models.NewTextQuestion(st.NewID("q"), "If you answered yes above, describe your strategy for async collaboration.", models.ShortText, false,
			models.TextSettings{MaxLength: 200}), conditionalOnPrevious: true, expectedValue: "Yes"},
		{question: models.NewFileQuestion(st.NewID("q"), "Upload a portfolio or case study (link placeholder).", false)},
	}
}

func productTemplate(st *store.Store) []templateQuestion {
	return []templateQuestion{
		{question: models.NewChoiceQuestion(st.NewID("q"), "How comfortable are you with stakeholder communication?", models.SingleChoice, true,
			models.ChoiceSettings{Options: []string{"Beginner", "Intermediate", "Advanced"}})},
		{question: models.NewTextQuestion(st.NewID("q"), "Walk through a time you managed conflicting priorities.", models.LongText, true,
			models.TextSettings{})},
		{question: models.NewChoiceQuestion(st.NewID("q"), "Select the frameworks you have launched products with.", models.MultiChoice, true,
			models.ChoiceSettings{Options: []string{"Scrum", "Kanban", "Dual Track Agile", "Shape Up"}, MaxSelections: 2})},
		{question: models.NewNumericQuestion(st.NewID("q"), "How many product launches have you led?", true,
			models.NumericSettings{Min: f64(0), Max: f64(50)})},
		{question: models.NewChoiceQuestion(st.NewID("q"), "Do you have experience with P&L ownership?", models.SingleChoice, true,
			models.ChoiceSettings{Options: []string{"Yes", "No"}})},
		{question: models.NewTextQuestion(st.NewID("q"), "If yes, describe the scope of the P&L you managed.", models.ShortText, false,
			models.TextSettings{}), conditionalOnPrevious: true, expectedValue: "Yes"},
		{question: models.NewTextQuestion(st.NewID("q"), "Describe how you measure feature success.", models.LongText, true,
			models.TextSettings{})},
	}
}

func dataTemplate(st *store.Store) []templateQuestion {
	return []templateQuestion{
		{question: models.NewTextQuestion(st.NewID("q"), "What data stack do you currently use?", models.ShortText, true,
			models.TextSettings{})},
		{question: models.NewChoiceQuestion(st.NewID("q"), "Choose the cloud platforms you have deployed on.", models.MultiChoice, true,
			models.ChoiceSettings{Options: []string{"AWS", "GCP", "Azure", "DigitalOcean"}, MaxSelections: 3})},
		{question: models.NewNumericQuestion(st.NewID("q"), "Number of experiments you ran last quarter.", false,
			models.NumericSettings{Min: f64(0), Max: f64(100)})},
		{question: models.NewTextQuestion(st.NewID("q"), "Tell us about a surprising insight from your data work.", models.LongText, true,
			models.TextSettings{})},
		{question: models.NewChoiceQuestion(st.NewID("q"), "Do you work with BI stakeholders regularly?", models.SingleChoice, true,
			models.ChoiceSettings{Options: []string{"Yes", "No"}})},
		{question: models.NewTextQuestion(st.NewID("q"), "If yes, how do you align deliverables?", models.ShortText, false,
			models.TextSettings{}), conditionalOnPrevious: true, expectedValue: "Yes"},
		{question: models.NewFileQuestion(st.NewID("q"), "Upload a dashboard export or share a link placeholder.", false)},
	}
}
