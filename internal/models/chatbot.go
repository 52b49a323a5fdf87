package models

// Chat message senders
type ChatSender string

const (
	SenderPatient ChatSender = "PATIENT"
	SenderBot     ChatSender = "BOT"
)

// ChatbotSession records one symptom-triage exchange for a patient
type ChatbotSession struct {
	BaseModel
	PatientID      string `gorm:"size:36;index" json:"patientId"`
	Symptoms       string `gorm:"type:text" json:"symptoms"`
	SuggestedDrugs string `gorm:"size:255" json:"suggestedDrugs"`
	Recommendation string `gorm:"type:text" json:"recommendation"`

	// Relations
	Patient  Patient       `gorm:"foreignKey:PatientID" json:"-"`
	Messages []ChatMessage `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}

// ChatMessage is a single patient or bot line within a session
type ChatMessage struct {
	BaseModel
	SessionID string     `gorm:"size:36;index" json:"sessionId"`
	Sender    ChatSender `gorm:"size:20" json:"sender"`
	Message   string     `gorm:"type:text" json:"message"`
}
