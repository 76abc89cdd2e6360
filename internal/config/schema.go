package config

// ServerConfig is the file-based configuration of the guardrail server
type ServerConfig struct {
	Server    ServerSection    `yaml:"server"`
	Terraform TerraformSection `yaml:"terraform"`
	List      ListSection      `yaml:"list"`
	Events    EventsSection    `yaml:"events"`
}

// ServerSection identifies the server to MCP clients
type ServerSection struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	// ReadOnly hides every tool and route that mutates a guardrail
	ReadOnly bool `yaml:"read_only"`
}

type TerraformSection struct {
	DefaultResourceName string `yaml:"default_resource_name"`
}

// ListSection controls how list_guardrails pages through Bedrock
type ListSection struct {
	PageSize int32 `yaml:"page_size"`
}

// EventsSection configures the change-event stream
type EventsSection struct {
	Stream string `yaml:"stream"`
	MaxLen int64  `yaml:"max_len"`
}
