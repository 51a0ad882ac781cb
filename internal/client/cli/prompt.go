package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// parseID разбирает положительный ID из первого аргумента
func parseID(args []string, usage string) (int64, []string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return 0, nil, fmt.Errorf("%w: missing ID. Usage: %s", ErrUsage, usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, nil, fmt.Errorf("%w: invalid ID %q", ErrUsage, args[0])
	}
	return id, args[1:], nil
}

// ask запрашивает значение; пустой ввод оставляет current.
// Конец ввода тоже оставляет current.
func (c *Cli) ask(label, current string) (string, error) {
	prompt := label + ": "
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, current)
	}
	value, err := c.io.ReadInput(prompt)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return current, nil
		}
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	if value == "" {
		return current, nil
	}
	return value, nil
}

// askRequired запрашивает непустое значение
func (c *Cli) askRequired(label string) (string, error) {
	value, err := c.io.ReadInput(label + ": ")
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	if value == "" {
		return "", fmt.Errorf("%s cannot be empty", strings.ToLower(label))
	}
	return value, nil
}

// askCompanyID запрашивает ID компании, пустой ввод оставляет current
func (c *Cli) askCompanyID(current int64) (int64, error) {
	def := ""
	if current != 0 {
		def = strconv.FormatInt(current, 10)
	}
	value, err := c.ask("Company ID (empty for none)", def)
	if err != nil {
		return 0, err
	}
	if value == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid company ID %q", value)
	}
	return id, nil
}

// confirm спрашивает подтверждение удаления. Без терминала и без --yes
// удаление запрещено.
func (c *Cli) confirm(question string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	if !c.io.IsInteractive() {
		return false, ErrNeedConfirm
	}
	answer, err := c.io.ReadInput(question + " (yes/no): ")
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	answer = strings.ToLower(answer)
	return answer == "yes" || answer == "y", nil
}
