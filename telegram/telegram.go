package telegram

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"lumina/models"
)

// ErrNotConfigured is returned when the bot token or chat id is missing from
// the environment. Callers treat notifications as best-effort either way.
var ErrNotConfigured = errors.New("telegram credentials not configured")

// apiBase is swapped out in tests.
var apiBase = "https://api.telegram.org"

var client = &http.Client{Timeout: 10 * time.Second}

// NotifyOrder posts a new-order summary to the operator chat.
func NotifyOrder(order *models.Order, items []models.OrderItem) error {
	return send(orderMessage(order, items))
}

// NotifyContact relays a storefront contact-form message to the operator chat.
func NotifyContact(name, contact, email, message string) error {
	return send(contactMessage(name, contact, email, message))
}

func orderMessage(order *models.Order, items []models.OrderItem) string {
	var b strings.Builder

	b.WriteString("🛒 NEW ORDER\n\n")
	fmt.Fprintf(&b, "📋 Order: %s\n", order.OrderNumber)
	fmt.Fprintf(&b, "👤 Name: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "📞 Contact: %s\n", order.CustomerPhone)
	if order.CustomerEmail != "" {
		fmt.Fprintf(&b, "📧 Email: %s\n", order.CustomerEmail)
	}
	if order.CustomerAddress != "" {
		fmt.Fprintf(&b, "📍 Address: %s\n", order.CustomerAddress)
	}
	if order.Notes != "" {
		fmt.Fprintf(&b, "💬 Notes: %s\n", order.Notes)
	}

	b.WriteString("\n📦 Products:\n")
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s x%d – $%.2f\n", i+1, item.ProductName, item.Quantity, item.Price*float64(item.Quantity))
	}

	fmt.Fprintf(&b, "\n💰 Total: $%.2f", order.Total)
	return b.String()
}

func contactMessage(name, contact, email, message string) string {
	var b strings.Builder

	b.WriteString("💬 NEW CONTACT MESSAGE\n\n")
	fmt.Fprintf(&b, "👤 Name: %s\n", name)
	fmt.Fprintf(&b, "📞 Contact: %s\n", contact)
	if email != "" {
		fmt.Fprintf(&b, "📧 Email: %s\n", email)
	}
	fmt.Fprintf(&b, "\n%s", message)
	return b.String()
}

func send(text string) error {
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	if botToken == "" || chatID == "" {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(map[string]string{
		"chat_id": chatID,
		"text":    text,
	})
	if err != nil {
		return err
	}

	resp, err := client.Post(
		fmt.Sprintf("%s/bot%s/sendMessage", apiBase, botToken),
		"application/json",
		bytes.NewReader(payload),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API error: %s", string(body))
	}
	return nil
}
