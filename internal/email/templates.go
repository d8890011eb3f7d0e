package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"text/template"
	"time"
)

const (
	TemplateOrderConfirmation = "order_confirmation"
	TemplateShipmentUpdate    = "shipment_update"
)

// OrderConfirmation is the data behind the order confirmation email.
// Summary lines arrive pre-formatted so the template never does money math.
type OrderConfirmation struct {
	OrderID       int64
	CustomerName  string
	CustomerEmail string
	OrderDate     time.Time
	Items         []ItemLine
	Summary       []SummaryLine
	Address       string
	TrackOrderURL string
}

type ItemLine struct {
	Name      string
	Variant   string
	Quantity  int
	UnitPrice string
	LineTotal string
}

type SummaryLine struct {
	Label  string
	Amount string
}

type ShipmentUpdate struct {
	OrderID        int64
	CustomerEmail  string
	ShippingMethod string
	ShippingTerms  string
	ShipmentDate   time.Time
	DeliveryDate   time.Time
	TrackOrderURL  string
}

type Renderer struct {
	html *htmltemplate.Template
	text *template.Template
}

func formatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

func NewRenderer() (*Renderer, error) {
	html := htmltemplate.New("email").Funcs(htmltemplate.FuncMap{"formatDate": formatDate})
	text := template.New("email").Funcs(template.FuncMap{"formatDate": formatDate})

	sources := map[string][2]string{
		TemplateOrderConfirmation: {orderConfirmationHTML, orderConfirmationText},
		TemplateShipmentUpdate:    {shipmentUpdateHTML, shipmentUpdateText},
	}
	for name, src := range sources {
		if _, err := html.New(name).Parse(src[0]); err != nil {
			return nil, fmt.Errorf("failed to parse HTML template %s: %w", name, err)
		}
		if _, err := text.New(name).Parse(src[1]); err != nil {
			return nil, fmt.Errorf("failed to parse text template %s: %w", name, err)
		}
	}

	return &Renderer{html: html, text: text}, nil
}

func (r *Renderer) OrderConfirmation(data *OrderConfirmation) (*Email, error) {
	if data == nil {
		return nil, fmt.Errorf("order confirmation data is required")
	}
	return r.render(TemplateOrderConfirmation, data.CustomerEmail, fmt.Sprintf("Order Confirmation - Order ID #%d", data.OrderID), data)
}

func (r *Renderer) ShipmentUpdate(data *ShipmentUpdate) (*Email, error) {
	if data == nil {
		return nil, fmt.Errorf("shipment update data is required")
	}
	return r.render(TemplateShipmentUpdate, data.CustomerEmail, fmt.Sprintf("Shipment Update - Order ID #%d", data.OrderID), data)
}

func (r *Renderer) render(name, to, subject string, data any) (*Email, error) {
	var htmlBuf, textBuf bytes.Buffer
	if err := r.html.ExecuteTemplate(&htmlBuf, name, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML template %s: %w", name, err)
	}
	if err := r.text.ExecuteTemplate(&textBuf, name, data); err != nil {
		return nil, fmt.Errorf("failed to render text template %s: %w", name, err)
	}
	return &Email{
		To:      to,
		Subject: subject,
		Text:    textBuf.String(),
		HTML:    htmlBuf.String(),
	}, nil
}

const orderConfirmationText = `Hi {{.CustomerName}},

Thank you for your order! Your order ID is #{{.OrderID}}, placed on {{formatDate .OrderDate}}.

Items:
{{range .Items}}- {{.Name}}{{if .Variant}} ({{.Variant}}){{end}} x {{.Quantity}} @ {{.UnitPrice}} = {{.LineTotal}}
{{end}}
{{range .Summary}}{{.Label}}: {{.Amount}}
{{end}}
Payment method: Cash on Delivery

Shipping to:
{{.Address}}
{{if .TrackOrderURL}}
Track your order: {{.TrackOrderURL}}
{{end}}`

const orderConfirmationHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Thank you for your order, {{.CustomerName}}!</h2>
  <p>Your order ID is <strong>#{{.OrderID}}</strong>, placed on {{formatDate .OrderDate}}.</p>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><th align="left">Item</th><th>Qty</th><th align="right">Price</th><th align="right">Total</th></tr>
    {{range .Items}}<tr>
      <td>{{.Name}}{{if .Variant}} <small>({{.Variant}})</small>{{end}}</td>
      <td align="center">{{.Quantity}}</td>
      <td align="right">{{.UnitPrice}}</td>
      <td align="right">{{.LineTotal}}</td>
    </tr>{{end}}
  </table>
  <table cellpadding="4" style="margin-top: 12px;">
    {{range .Summary}}<tr><td>{{.Label}}</td><td align="right">{{.Amount}}</td></tr>{{end}}
  </table>
  <p>Payment method: Cash on Delivery</p>
  <p>Shipping to:<br>{{.Address}}</p>
  {{if .TrackOrderURL}}<p><a href="{{.TrackOrderURL}}">Track your order</a></p>{{end}}
</body>
</html>`

const shipmentUpdateText = `Your order #{{.OrderID}} is on its way.

Shipping method: {{.ShippingMethod}}
Shipping terms: {{.ShippingTerms}}
Shipment date: {{formatDate .ShipmentDate}}
Expected delivery: {{formatDate .DeliveryDate}}
{{if .TrackOrderURL}}
Track your order: {{.TrackOrderURL}}
{{end}}`

const shipmentUpdateHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Your order #{{.OrderID}} is on its way</h2>
  <p><strong>Shipping method:</strong> {{.ShippingMethod}}</p>
  <p><strong>Shipping terms:</strong> {{.ShippingTerms}}</p>
  <p><strong>Shipment date:</strong> {{formatDate .ShipmentDate}}</p>
  <p><strong>Expected delivery:</strong> {{formatDate .DeliveryDate}}</p>
  {{if .TrackOrderURL}}<p><a href="{{.TrackOrderURL}}">Track your order</a></p>{{end}}
</body>
</html>`
