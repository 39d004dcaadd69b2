package browser

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/playwright-community/playwright-go"
)

// ErrCredentials marks a missing or unusable cookie file
var ErrCredentials = errors.New("session credentials unavailable")

// Cookie represents a browser cookie as exported by cookie-editor extensions.
// Value is a pointer so an absent key can be told apart from an empty value.
type Cookie struct {
	Name           string  `json:"name"`
	Value          *string `json:"value"`
	Domain         string  `json:"domain"`
	Path           string  `json:"path"`
	ExpirationDate float64 `json:"expirationDate"`
	Expires        float64 `json:"expires"`
	HTTPOnly       bool    `json:"httpOnly"`
	Secure         bool    `json:"secure"`
	SameSite       string  `json:"sameSite"`
}

func LoadCookies(path string) ([]playwright.OptionalCookie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCredentials, err)
	}

	var cookies []Cookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrCredentials, path, err)
	}

	pwCookies := make([]playwright.OptionalCookie, len(cookies))
	for i, c := range cookies {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("%w: cookie #%d: %v", ErrCredentials, i, err)
		}
		pwCookies[i] = c.ToPlaywright()
	}
	return pwCookies, nil
}

// Validate checks the fields the browser refuses to work without
func (c Cookie) Validate() error {
	switch {
	case c.Name == "":
		return errors.New("missing name")
	case c.Value == nil:
		return fmt.Errorf("cookie %q: missing value", c.Name)
	case c.Domain == "":
		return fmt.Errorf("cookie %q: missing domain", c.Name)
	}
	return nil
}

func (c Cookie) ToPlaywright() playwright.OptionalCookie {
	path := c.Path
	if path == "" {
		path = "/"
	}

	var value string
	if c.Value != nil {
		value = *c.Value
	}

	pwCookie := playwright.OptionalCookie{
		Name:     c.Name,
		Value:    value,
		Domain:   playwright.String(c.Domain),
		Path:     playwright.String(path),
		HttpOnly: playwright.Bool(c.HTTPOnly),
		Secure:   playwright.Bool(c.Secure),
		SameSite: playwright.SameSiteAttributeLax,
	}

	//truncate to whole seconds like the exporting extension does
	expires := c.ExpirationDate
	if expires == 0 {
		expires = c.Expires
	}
	if expires > 0 {
		pwCookie.Expires = playwright.Float(float64(int64(expires)))
	}

	switch c.SameSite {
	case "Strict", "strict":
		pwCookie.SameSite = playwright.SameSiteAttributeStrict
	case "None", "none", "no_restriction":
		//browsers reject SameSite=None without Secure
		if c.Secure {
			pwCookie.SameSite = playwright.SameSiteAttributeNone
		}
	}

	return pwCookie
}
