package payfast

import (
	"crypto/md5"
	"fmt"
	"net/url"
	"os"
	"strings"

	"vendora/models"
)

// Config holds the merchant credentials and callback URLs for the redirect
// flow. The buyer is sent to ProcessURL with the signed form fields; PayFast
// confirms or denies payment asynchronously via NotifyURL (handled out of
// process, not modeled here).
type Config struct {
	MerchantID  string
	MerchantKey string
	Passphrase  string
	ReturnURL   string
	CancelURL   string
	NotifyURL   string
	ProcessURL  string
}

func ConfigFromEnv() Config {
	cfg := Config{
		MerchantID:  os.Getenv("PAYFAST_MERCHANT_ID"),
		MerchantKey: os.Getenv("PAYFAST_MERCHANT_KEY"),
		Passphrase:  os.Getenv("PAYFAST_PASSPHRASE"),
		ReturnURL:   os.Getenv("PAYFAST_RETURN_URL"),
		CancelURL:   os.Getenv("PAYFAST_CANCEL_URL"),
		NotifyURL:   os.Getenv("PAYFAST_NOTIFY_URL"),
		ProcessURL:  os.Getenv("PAYFAST_PROCESS_URL"),
	}
	if cfg.ProcessURL == "" {
		cfg.ProcessURL = "https://sandbox.payfast.co.za/eng/process"
	}
	return cfg
}

// Client builds signed payment requests for sets of committed orders.
type Client struct {
	cfg Config
}

func New(cfg Config) *Client {
	return &Client{cfg: cfg}
}

func NewFromEnv() *Client {
	return New(ConfigFromEnv())
}

// BuildIntent constructs the signed form payload for the given orders.
// Amount is the sum of the committed order totals; the reference joins the
// order numbers so the gateway notification can be matched back.
func (c *Client) BuildIntent(orders []models.Order, buyerName, buyerEmail string) (*models.PaymentIntent, error) {
	if len(orders) == 0 {
		return nil, fmt.Errorf("no orders to pay for")
	}
	if c.cfg.MerchantID == "" || c.cfg.MerchantKey == "" {
		return nil, fmt.Errorf("payfast merchant credentials not configured")
	}

	var amount float64
	numbers := make([]string, 0, len(orders))
	for _, o := range orders {
		amount += o.Total
		numbers = append(numbers, o.OrderNumber)
	}

	// Field order matters: the signature is computed over the fields in the
	// order PayFast documents them, not sorted.
	fields := [][2]string{
		{"merchant_id", c.cfg.MerchantID},
		{"merchant_key", c.cfg.MerchantKey},
		{"return_url", c.cfg.ReturnURL},
		{"cancel_url", c.cfg.CancelURL},
		{"notify_url", c.cfg.NotifyURL},
		{"name_first", buyerName},
		{"email_address", buyerEmail},
		{"m_payment_id", strings.Join(numbers, ",")},
		{"amount", fmt.Sprintf("%.2f", amount)},
		{"item_name", fmt.Sprintf("Order %s", strings.Join(numbers, ", "))},
	}

	formData := make(map[string]string, len(fields)+1)
	for _, f := range fields {
		if f[1] != "" {
			formData[f[0]] = f[1]
		}
	}
	formData["signature"] = Sign(fields, c.cfg.Passphrase)

	return &models.PaymentIntent{
		Amount:       amount,
		OrderNumbers: numbers,
		FormData:     formData,
		FormAction:   c.cfg.ProcessURL,
	}, nil
}

// Sign computes the MD5 signature over the non-empty fields in order,
// URL-encoded with spaces as '+', with the passphrase appended when set.
func Sign(fields [][2]string, passphrase string) string {
	var b strings.Builder
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(f[0])
		b.WriteByte('=')
		b.WriteString(encode(f[1]))
	}
	if passphrase != "" {
		b.WriteString("&passphrase=")
		b.WriteString(encode(passphrase))
	}
	return fmt.Sprintf("%x", md5.Sum([]byte(b.String())))
}

// QueryEscape encodes spaces as '+', which is what PayFast expects.
func encode(v string) string {
	return url.QueryEscape(v)
}
