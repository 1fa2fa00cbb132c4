package config

import (
	"fmt"
)

// Parameter is a named automation parameter with an optional default.
// A nil Default marks the parameter as required: it has no value unless the
// orchestrator (or the configuration file) supplies one.
type Parameter struct {
	Name    string
	Default any
}

// Required reports whether the parameter has no compiled-in default.
func (p Parameter) Required() bool {
	return p.Default == nil
}

// Required parameters. They must be configured on the orchestrator.
var (
	// EmailSender is the address the report is sent from.
	EmailSender = Parameter{Name: "EMAIL_PESSOAL"}

	// EmailRecipient is the address the report is sent to.
	EmailRecipient = Parameter{Name: "EMAIL_DESTINATARIO"}

	// EmailSubject is the subject line of the report e-mail.
	EmailSubject = Parameter{Name: "ASSUNTO_EMAIL"}
)

// Optional parameters. They have a default but can be overridden.
var (
	// CredentialsPath points to the e-mail provider credential file.
	CredentialsPath = Parameter{Name: "PATH_TO_CREDENTIALS", Default: "resources/credenciais_oauth.json"}

	// LogFilePath points to the append-only run log.
	LogFilePath = Parameter{Name: "PATH_TO_LOGFILE", Default: "resources/logs.txt"}

	// OutputPath is where the PDF report is written.
	OutputPath = Parameter{Name: "PATH_TO_OUTPUT", Default: "resources/report.pdf"}

	// DataTablePath points to the attendance CSV.
	DataTablePath = Parameter{Name: "PATH_TO_DATA_TABLE", Default: "resources/frequenciaTurmaA.csv"}
)

// Parameters returns every known parameter, required ones first.
func Parameters() []Parameter {
	return []Parameter{
		EmailSender,
		EmailRecipient,
		EmailSubject,
		CredentialsPath,
		LogFilePath,
		OutputPath,
		DataTablePath,
	}
}

// Provider resolves parameters against the overrides of one execution.
// It is a pure read: resolving never changes the provider.
type Provider struct {
	overrides map[string]any
	defaults  map[string]any
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithDefaults layers defaults (typically from the configuration file)
// between the compiled-in defaults and the execution overrides.
func WithDefaults(defaults map[string]any) ProviderOption {
	return func(p *Provider) {
		p.defaults = defaults
	}
}

// NewProvider creates a Provider over the given execution overrides.
// A nil map is treated as empty.
func NewProvider(overrides map[string]any, opts ...ProviderOption) *Provider {
	p := &Provider{overrides: overrides}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Get returns the value of the parameter.
// Lookup order: execution overrides, configured defaults, p.Default.
func (pr *Provider) Get(p Parameter) any {
	if v, ok := pr.overrides[p.Name]; ok {
		return v
	}
	if v, ok := pr.defaults[p.Name]; ok {
		return v
	}
	return p.Default
}

// String returns the value of the parameter as a string.
// A parameter with no value at all resolves to the empty string.
func (pr *Provider) String(p Parameter) string {
	v := pr.Get(p)
	switch tv := v.(type) {
	case nil:
		return ""
	case string:
		return tv
	case fmt.Stringer:
		return tv.String()
	default:
		return fmt.Sprint(tv)
	}
}

// Settings are the automation parameters of one run, resolved once.
// The struct is passed by pointer to every component that needs it and is
// never modified after Resolve returns.
type Settings struct {
	SenderEmail     string
	RecipientEmail  string
	Subject         string
	CredentialsPath string
	LogFilePath     string
	OutputPath      string
	DataTablePath   string
}

// Resolve builds the Settings of a run from the provider.
// Required parameters that were not supplied resolve to "" and are rejected
// later by the component that needs them.
func Resolve(pr *Provider) *Settings {
	return &Settings{
		SenderEmail:     pr.String(EmailSender),
		RecipientEmail:  pr.String(EmailRecipient),
		Subject:         pr.String(EmailSubject),
		CredentialsPath: pr.String(CredentialsPath),
		LogFilePath:     pr.String(LogFilePath),
		OutputPath:      pr.String(OutputPath),
		DataTablePath:   pr.String(DataTablePath),
	}
}

// Missing returns the names of required parameters that resolved to "".
func (s *Settings) Missing() []string {
	var missing []string
	if s.SenderEmail == "" {
		missing = append(missing, EmailSender.Name)
	}
	if s.RecipientEmail == "" {
		missing = append(missing, EmailRecipient.Name)
	}
	if s.Subject == "" {
		missing = append(missing, EmailSubject.Name)
	}
	return missing
}
