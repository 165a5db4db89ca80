package mailclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// JSON запрос почтового шлюза
type Mail struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// JSON ответ почтового шлюза
type MailAnswer struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type MailClient interface {
	Send(ctx context.Context, mail Mail) (MailAnswer, error)
}

type mailClient struct {
	serviceAddr string
	client      *resty.Client
}

func NewMailClient(serviceAddr string) MailClient {
	return mailClient{serviceAddr: serviceAddr, client: resty.New()}
}

func (client mailClient) Send(ctx context.Context, mail Mail) (MailAnswer, error) {
	path := "/api/send"

	setreq := client.client.R()
	setreq.Method = http.MethodPost
	setreq.URL = client.serviceAddr + path
	setreq.SetContext(ctx)
	setreq.SetHeader("Content-Type", "application/json")
	setreq.SetBody(mail)
	setresp, err := setreq.Send()
	if err != nil {
		return MailAnswer{}, err
	}

	switch setresp.StatusCode() {
	case http.StatusOK, http.StatusAccepted:
		var mailAnswer MailAnswer
		if len(setresp.Body()) == 0 {
			return mailAnswer, nil
		}
		err = json.Unmarshal(setresp.Body(), &mailAnswer)
		return mailAnswer, err
	default:
		return MailAnswer{}, fmt.Errorf("mail request status: %d", setresp.StatusCode())
	}
}
