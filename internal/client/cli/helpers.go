package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	clientapi "github.com/ndmitry/pricetrack/internal/client/api"
	"github.com/ndmitry/pricetrack/internal/client/products"
	"github.com/ndmitry/pricetrack/internal/pricing"
)

const dateLayout = "2006-01-02"

// wrapServiceError переводит служебные ошибки в понятное пользователю сообщение
func wrapServiceError(err error) error {
	if errors.Is(err, products.ErrNoTokenFound) || errors.Is(err, clientapi.ErrUnauthenticated) {
		return fmt.Errorf("not authenticated. Please run 'pricetrack login' first")
	}
	return err
}

func formatMoney(price float64, currency string) string {
	return fmt.Sprintf("%.2f %s", price, currency)
}

func trendMark(trend string) string {
	switch trend {
	case pricing.TrendUp:
		return "↑"
	case pricing.TrendDown:
		return "↓"
	default:
		return "="
	}
}

// promptRequired запрашивает значение до тех пор, пока оно непустое
func (c *Cli) promptRequired(name string) (string, error) {
	value, err := c.io.ReadInput(name + ": ")
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	if value == "" {
		return "", fmt.Errorf("%s cannot be empty", name)
	}
	return value, nil
}

// promptOptional - пустой ввод допустим и означает "пропустить"
func (c *Cli) promptOptional(name string) (string, error) {
	value, err := c.io.ReadInput(name + " (optional): ")
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return value, nil
}

func (c *Cli) promptPrice(name string) (float64, error) {
	raw, err := c.promptRequired(name)
	if err != nil {
		return 0, err
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", raw, err)
	}
	if price < 0 {
		return 0, fmt.Errorf("price cannot be negative")
	}
	return price, nil
}

// promptDate - пустой ввод подставляет сегодняшнюю дату
func (c *Cli) promptDate(name string) (string, error) {
	today := time.Now().Format(dateLayout)
	raw, err := c.io.ReadInput(fmt.Sprintf("%s [%s]: ", name, today))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	if raw == "" {
		return today, nil
	}
	if _, err := time.Parse(dateLayout, raw); err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return raw, nil
}

// confirm запрашивает подтверждение; все кроме y/yes трактуется как отказ
func (c *Cli) confirm(prompt string) (bool, error) {
	answer, err := c.io.ReadInput(prompt + " [y/N]: ")
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	return answer == "y" || answer == "Y" || answer == "yes", nil
}
