package config

// Default template content. These are the texts of the class-A
// attendance report; a configuration file can replace any of them.
const (
	DefaultInstitution        = "ESCOLA RAIMUNDA CONCEIÇÃO"
	DefaultSubtitle           = "FREQUENCIA DA TURMA A"
	DefaultDescriptionHeading = "Observações sobre a automação e o relatório"
	DefaultDescription        = "Este relatório é resultado de um projeto de automação RPA que produz um arquivo " +
		"relacionado a frequência de uma turma (fictícia) e o manda via e-mail a um professor " +
		"(fictício também.). O fiz para me aprimorar nesta área e demonstrar minhas habilidades. Essa " +
		"descrição serve pra confirmar que o relatório que o bot produz de fato tem uma formatação " +
		"possivelmente confusa e sem sentido. Isso é porque não sei exatamente como deveria ser um relatório " +
		"neste contexto, e decidi não separar tanto tempo assim para formatação ou estrutura."
	DefaultTableHeading = "Frequencia dos alunos"
	DefaultEmailBody    = "Bom dia, professor Ângelo.\n\n" +
		"Segue em anexo o relatório.\n\n" +
		"Atenciosamente, Robô."
	DefaultSuccessAlertTitle   = "Relatório Enviado"
	DefaultSuccessAlertMessage = "Um relatório da frequência da turma A foi enviado ao professor Ângelo por e-mail."
	DefaultFinishMessage       = "Tarefa concluída com sucesso."
	DefaultErrorAlertTitle     = "Erro de execução"
	DefaultNullValuesMessage   = "Há valores nulos nos dados. Corrija e tente novamente."
	DefaultUnexpectedPrefix    = "Ocorreu um erro inesperado: "
)

// Template holds the text content of the report, the e-mail and the
// orchestrator notifications.
type Template struct {
	// Institution is the bold title on the cover page.
	Institution string `yaml:"institution,omitempty"`

	// Subtitle is shown below the institution on the cover page.
	Subtitle string `yaml:"subtitle,omitempty"`

	// DescriptionHeading is upper-cased and shown above the description.
	DescriptionHeading string `yaml:"descriptionHeading,omitempty"`

	// Description is the explanatory paragraph of the second page.
	Description string `yaml:"description,omitempty"`

	// TableHeading is the paragraph above the attendance table.
	TableHeading string `yaml:"tableHeading,omitempty"`

	// EmailBody is the plain-text body of the report e-mail.
	EmailBody string `yaml:"emailBody,omitempty"`

	// SuccessAlertTitle and SuccessAlertMessage make up the INFO alert.
	SuccessAlertTitle   string `yaml:"successAlertTitle,omitempty"`
	SuccessAlertMessage string `yaml:"successAlertMessage,omitempty"`

	// FinishMessage is sent along with the SUCCESS status.
	FinishMessage string `yaml:"finishMessage,omitempty"`

	// ErrorAlertTitle is the title of the ERROR alert.
	ErrorAlertTitle string `yaml:"errorAlertTitle,omitempty"`

	// NullValuesMessage is the alert message when the table has nulls.
	NullValuesMessage string `yaml:"nullValuesMessage,omitempty"`

	// UnexpectedErrorPrefix is prepended to any other error in the alert.
	UnexpectedErrorPrefix string `yaml:"unexpectedErrorPrefix,omitempty"`
}

// DefaultTemplate returns the built-in template.
func DefaultTemplate() Template {
	return Template{
		Institution:           DefaultInstitution,
		Subtitle:              DefaultSubtitle,
		DescriptionHeading:    DefaultDescriptionHeading,
		Description:           DefaultDescription,
		TableHeading:          DefaultTableHeading,
		EmailBody:             DefaultEmailBody,
		SuccessAlertTitle:     DefaultSuccessAlertTitle,
		SuccessAlertMessage:   DefaultSuccessAlertMessage,
		FinishMessage:         DefaultFinishMessage,
		ErrorAlertTitle:       DefaultErrorAlertTitle,
		NullValuesMessage:     DefaultNullValuesMessage,
		UnexpectedErrorPrefix: DefaultUnexpectedPrefix,
	}
}

// WithDefaults returns a copy of t where every empty field is taken from
// DefaultTemplate.
func (t Template) WithDefaults() Template {
	d := DefaultTemplate()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&t.Institution, d.Institution)
	fill(&t.Subtitle, d.Subtitle)
	fill(&t.DescriptionHeading, d.DescriptionHeading)
	fill(&t.Description, d.Description)
	fill(&t.TableHeading, d.TableHeading)
	fill(&t.EmailBody, d.EmailBody)
	fill(&t.SuccessAlertTitle, d.SuccessAlertTitle)
	fill(&t.SuccessAlertMessage, d.SuccessAlertMessage)
	fill(&t.FinishMessage, d.FinishMessage)
	fill(&t.ErrorAlertTitle, d.ErrorAlertTitle)
	fill(&t.NullValuesMessage, d.NullValuesMessage)
	fill(&t.UnexpectedErrorPrefix, d.UnexpectedErrorPrefix)
	return t
}
