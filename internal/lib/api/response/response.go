package response

import "time"

type Response struct {
	Data          interface{} `json:"data,omitempty"`
	Success       bool        `json:"success"`
	StatusMessage string      `json:"status_message"`
	Timestamp     string      `json:"timestamp"`
}

func Ok(data interface{}) Response {
	return Response{
		Data:          data,
		Success:       true,
		StatusMessage: "Success",
		Timestamp:     now(),
	}
}

func Error(message string) Response {
	return Response{
		Success:       false,
		StatusMessage: message,
		Timestamp:     now(),
	}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
