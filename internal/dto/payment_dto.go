package dto

// RazorpayWebhookPayload is the subset of the gateway's webhook body we act
// on. The raw body must be signature-verified before this is parsed.
type RazorpayWebhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				Id      string `json:"id"`
				OrderId string `json:"order_id"`
				Status  string `json:"status"`
				Amount  int64  `json:"amount"`
				Method  string `json:"method"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}
