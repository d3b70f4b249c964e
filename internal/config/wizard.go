package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to craftburger! Let's configure the site server.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Brand.
	brandPrompt := promptui.Prompt{
		Label:   "Brand name",
		Default: cfg.Site.Brand,
	}
	brand, err := brandPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("brand: %w", err)
	}
	cfg.Site.Brand = strings.TrimSpace(brand)

	// 2. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	// 3. Fallback theme for visitors with no stored or OS preference.
	themePrompt := promptui.Select{
		Label: "Default theme",
		Items: []string{"light", "dark"},
	}
	_, theme, err := themePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("theme selection: %w", err)
	}
	cfg.Theme.Default = theme

	// 4. Contact endpoint.
	endpointPrompt := promptui.Prompt{
		Label:   "Contact form endpoint",
		Default: cfg.Contact.Endpoint,
	}
	endpoint, err := endpointPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("contact endpoint: %w", err)
	}
	cfg.Contact.Endpoint = strings.TrimSpace(endpoint)

	// 5. Reply-to address forwarded with each message.
	replyPrompt := promptui.Prompt{
		Label:   "Reply-to address",
		Default: cfg.Contact.ReplyTo,
	}
	replyTo, err := replyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("reply-to: %w", err)
	}
	cfg.Contact.ReplyTo = strings.TrimSpace(replyTo)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(input string) error {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
