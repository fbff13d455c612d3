package connection

// Details is the body served by the connection-details endpoint. Endpoints
// may send the credential as "token" or "participantToken".
type Details struct {
	ServerURL        string `json:"serverUrl,omitempty"`
	RoomName         string `json:"roomName,omitempty"`
	ParticipantName  string `json:"participantName,omitempty"`
	AccessToken      string `json:"token,omitempty"`
	ParticipantToken string `json:"participantToken,omitempty"`
}

// Token returns the participant credential, preferring "token".
func (d *Details) Token() string {
	if d == nil {
		return ""
	}
	if d.AccessToken != "" {
		return d.AccessToken
	}
	return d.ParticipantToken
}
