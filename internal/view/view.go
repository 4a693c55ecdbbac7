package view

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"io"
	"net/url"
	texttemplate "text/template"

	"github.com/alimikegami/quadraplay/payment-service/internal/dto"
)

//go:embed templates
var templateFS embed.FS

var (
	redirectTmpl        = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/redirect.html"))
	reservationHTMLTmpl = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/reservation_confirmed.html"))
	reservationTextTmpl = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/reservation_confirmed.txt"))
)

type Outcome string

const (
	OutcomeFinish   Outcome = "finish"
	OutcomeUnfinish Outcome = "unfinish"
	OutcomeError    Outcome = "error"
)

type outcomePage struct {
	title         string
	message       string
	iconColor     string
	iconPath      string
	defaultStatus string
}

var outcomePages = map[Outcome]outcomePage{
	OutcomeFinish: {
		title:         "Pembayaran Berhasil",
		message:       "Terima kasih! Pembayaran Anda sedang diproses. Anda akan diarahkan kembali ke aplikasi.",
		iconColor:     "#4CAF50",
		iconPath:      "M9 16.17L4.83 12l-1.42 1.41L9 19 21 7l-1.41-1.41z",
		defaultStatus: "settlement",
	},
	OutcomeUnfinish: {
		title:         "Menunggu Pembayaran",
		message:       "Silakan selesaikan pembayaran Anda sebelum waktu habis.",
		iconColor:     "#FFA726",
		iconPath:      "M11.99 2C6.47 2 2 6.48 2 12s4.47 10 9.99 10C17.52 22 22 17.52 22 12S17.52 2 11.99 2zM12 20c-4.42 0-8-3.58-8-8s3.58-8 8-8 8 3.58 8 8-3.58 8-8 8zm.5-13H11v6l5.25 3.15.75-1.23-4.5-2.67z",
		defaultStatus: "pending",
	},
	OutcomeError: {
		title:         "Pembayaran Gagal",
		message:       "Maaf, terjadi kesalahan saat memproses pembayaran Anda. Silakan coba lagi.",
		iconColor:     "#F44336",
		iconPath:      "M19 6.41L17.59 5 12 10.59 6.41 5 5 6.41 10.59 12 5 17.59 6.41 19 12 13.41 17.59 19 19 17.59 13.41 12z",
		defaultStatus: "error",
	},
}

// DefaultStatus is the transaction status assumed when the gateway redirect carries none.
func DefaultStatus(outcome Outcome) string {
	return outcomePages[outcome].defaultStatus
}

// DeepLink builds <scheme>://payment/<outcome>?order_id=..&status=..
func DeepLink(scheme string, outcome Outcome, orderID, status string) string {
	q := url.Values{}
	q.Set("order_id", orderID)
	q.Set("status", status)
	return scheme + "://payment/" + string(outcome) + "?" + q.Encode()
}

type redirectPage struct {
	Title     string
	Heading   string
	Message   string
	IconColor htmltemplate.CSS
	IconPath  string
	OrderID   string
	DeepLink  htmltemplate.URL
	AppName   string
}

func RenderRedirectPage(w io.Writer, appName, deepLink string, outcome Outcome, orderID string) error {
	page := outcomePages[outcome]

	return redirectTmpl.Execute(w, redirectPage{
		Title:     page.title,
		Heading:   page.title,
		Message:   page.message,
		IconColor: htmltemplate.CSS(page.iconColor),
		IconPath:  page.iconPath,
		OrderID:   orderID,
		DeepLink:  htmltemplate.URL(deepLink),
		AppName:   appName,
	})
}

// RenderReservationConfirmation returns the HTML and plain-text bodies of the confirmation email.
func RenderReservationConfirmation(data dto.ReservationConfirmation) (html string, text string, err error) {
	var htmlBuf, textBuf bytes.Buffer

	if err = reservationHTMLTmpl.Execute(&htmlBuf, data); err != nil {
		return
	}
	if err = reservationTextTmpl.Execute(&textBuf, data); err != nil {
		return
	}

	return htmlBuf.String(), textBuf.String(), nil
}
