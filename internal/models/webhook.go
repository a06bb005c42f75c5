package models

// WebhookArg is one query argument of a webhook call.
type WebhookArg struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// WebhookCall is a webhook name and its ordered arguments.
type WebhookCall struct {
	Webhook string       `yaml:"webhook"`
	Args    []WebhookArg `yaml:"args"`
}

// Arg is shorthand for a WebhookArg literal.
func Arg(name, value string) WebhookArg {
	return WebhookArg{Name: name, Value: value}
}
