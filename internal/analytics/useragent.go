package analytics

import "github.com/mileusna/useragent"

// Device types.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceBot     = "bot"
)

// Client describes the browser that sent a request.
type Client struct {
	Browser    string
	OS         string
	DeviceType string
}

// ParseClient extracts browser, OS and device type from a User-Agent.
// An empty User-Agent is treated as a bot.
func ParseClient(uaString string) Client {
	if uaString == "" {
		return Client{Browser: "Unknown", OS: "Unknown", DeviceType: DeviceBot}
	}

	ua := useragent.Parse(uaString)
	c := Client{Browser: ua.Name, OS: ua.OS}
	if c.Browser == "" {
		c.Browser = "Unknown"
	}
	if c.OS == "" {
		c.OS = "Unknown"
	}

	switch {
	case ua.Bot:
		c.DeviceType = DeviceBot
	case ua.Tablet:
		c.DeviceType = DeviceTablet
	case ua.Mobile:
		c.DeviceType = DeviceMobile
	default:
		c.DeviceType = DeviceDesktop
	}
	return c
}
