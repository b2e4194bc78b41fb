package event

const OtpIssuedDestination string = "otp_issued"
const OtpIssuedDestinationConsumerNotification string = "otp_issued_notification"

type OtpIssuedMessage struct {
	Phone     string `json:"phone"`
	Code      string `json:"code"`
	ExpiresAt int64  `json:"expires_at"`
}
