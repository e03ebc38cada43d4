// internal/workers/communication/send-notification/models.go
package sendnotification

type Recipient struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type Input struct {
	Type        string                 `json:"type"`
	RecipientID string                 `json:"recipientId,omitempty"`
	Recipient   Recipient              `json:"recipient,omitempty"`
	Priority    string                 `json:"priority,omitempty"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	EmailSent      bool   `json:"emailSent"`
	SMSSent        bool   `json:"smsSent"`
}
