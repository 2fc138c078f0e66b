package models

// GenerateRequest is the program-generation request body.
// Only ClientID and PrimaryGoal are mandatory; the rest have defaults.
type GenerateRequest struct {
	ClientID        string   `json:"clientId" validate:"required"`
	ProgramName     string   `json:"programName,omitempty" validate:"omitempty,max=120"`
	ClientAge       *int     `json:"clientAge,omitempty" validate:"omitempty,min=10,max=100"`
	PrimaryGoal     string   `json:"primaryGoal" validate:"required"`
	SecondaryGoals  []string `json:"secondaryGoals,omitempty" validate:"omitempty,dive,required"`
	OptPhase        string   `json:"optPhase,omitempty" validate:"omitempty,optphase"`
	ExperienceLevel string   `json:"experienceLevel,omitempty" validate:"omitempty,level"`
	Duration        int      `json:"duration,omitempty" validate:"omitempty,min=1,max=52"`
	TemplateID      string   `json:"templateId,omitempty"`
	SplitType       string   `json:"splitType,omitempty" validate:"omitempty,split"`
	UseAI           *bool    `json:"useAI,omitempty"`
}

// GenerateResponse is returned on successful generation.
type GenerateResponse struct {
	Success bool     `json:"success"`
	Program *Program `json:"program"`
	Message string   `json:"message"`
	UsedAI  bool     `json:"usedAI"`
}
