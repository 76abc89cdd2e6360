package policy

type kind int

const (
	kindString kind = iota
	kindBool
	kindNumber
	kindStringList
	kindObjectList
)

func (k kind) String() string {
	switch k {
	case kindString:
		return "string"
	case kindBool:
		return "boolean"
	case kindNumber:
		return "number"
	case kindStringList:
		return "list of strings"
	case kindObjectList:
		return "list of objects"
	}
	return "value"
}

// field is one entry of the schema table. def computes a default from the already
// normalized siblings, so derived defaults (inputAction follows action) stay in one place.
type field struct {
	name     string
	kind     kind
	required bool
	enum     []string
	min, max *float64
	maxLen   int
	def      func(obj map[string]any) any
	elem     *schema
}

type schema struct {
	fields []field
	// anyOf lists fields of which at least one must be present and non-empty. The first
	// one is reported missing when none is.
	anyOf []string
	// check runs on the normalized object and returns "path: reason" entries.
	check func(obj map[string]any, path string) []string
}

var (
	filterStrengths    = []string{"NONE", "LOW", "MEDIUM", "HIGH"}
	contentFilterTypes = []string{"SEXUAL", "VIOLENCE", "HATE", "INSULTS", "MISCONDUCT", "PROMPT_ATTACK"}
	modalities         = []string{"TEXT", "IMAGE"}
	blockActions       = []string{"BLOCK", "NONE"}
	sensitiveActions   = []string{"BLOCK", "ANONYMIZE", "NONE"}
	topicTypes         = []string{"DENY"}
	managedWordTypes   = []string{"PROFANITY"}
	groundingTypes     = []string{"GROUNDING", "RELEVANCE"}
	tierNames          = []string{"CLASSIC", "STANDARD"}
	piiEntityTypes     = []string{
		"ADDRESS", "AGE", "AWS_ACCESS_KEY", "AWS_SECRET_KEY", "CA_HEALTH_NUMBER",
		"CA_SOCIAL_INSURANCE_NUMBER", "CREDIT_DEBIT_CARD_CVV", "CREDIT_DEBIT_CARD_EXPIRY",
		"CREDIT_DEBIT_CARD_NUMBER", "DRIVER_ID", "EMAIL", "INTERNATIONAL_BANK_ACCOUNT_NUMBER",
		"IP_ADDRESS", "LICENSE_PLATE", "MAC_ADDRESS", "NAME", "PASSWORD", "PHONE", "PIN",
		"SWIFT_CODE", "UK_NATIONAL_HEALTH_SERVICE_NUMBER", "UK_NATIONAL_INSURANCE_NUMBER",
		"UK_UNIQUE_TAXPAYER_REFERENCE_NUMBER", "URL", "USERNAME", "US_BANK_ACCOUNT_NUMBER",
		"US_BANK_ROUTING_NUMBER", "US_INDIVIDUAL_TAX_IDENTIFICATION_NUMBER", "US_PASSPORT_NUMBER",
		"US_SOCIAL_SECURITY_NUMBER", "VEHICLE_IDENTIFICATION_NUMBER",
	}
)

func constant(v any) func(map[string]any) any {
	return func(map[string]any) any { return v }
}

func sibling(name string) func(map[string]any) any {
	return func(obj map[string]any) any { return obj[name] }
}

func textOnly(map[string]any) any { return []string{"TEXT"} }

func emptyList(map[string]any) any { return []string{} }

func emptyObjects(map[string]any) any { return []any{} }

func float(v float64) *float64 { return &v }

// detectFields are the per-direction action/enabled switches every Bedrock filter entry
// carries. actionDefault decides what inputAction/outputAction fall back to.
func detectFields(actions []string, actionDefault func(map[string]any) any) []field {
	return []field{
		{name: "inputAction", kind: kindString, enum: actions, def: actionDefault},
		{name: "outputAction", kind: kindString, enum: actions, def: actionDefault},
		{name: "inputEnabled", kind: kindBool, def: constant(true)},
		{name: "outputEnabled", kind: kindBool, def: constant(true)},
	}
}

func withDetect(fields []field, actions []string, actionDefault func(map[string]any) any) *schema {
	return &schema{fields: append(fields, detectFields(actions, actionDefault)...)}
}

var contentFilterSchema = func() *schema {
	s := withDetect([]field{
		{name: "type", kind: kindString, required: true, enum: contentFilterTypes},
		{name: "inputStrength", kind: kindString, required: true, enum: filterStrengths},
		{name: "outputStrength", kind: kindString, required: true, enum: filterStrengths},
		{name: "inputModalities", kind: kindStringList, enum: modalities, def: textOnly},
		{name: "outputModalities", kind: kindStringList, enum: modalities, def: textOnly},
	}, blockActions, constant("BLOCK"))
	s.check = func(obj map[string]any, path string) []string {
		if obj["type"] == "PROMPT_ATTACK" && obj["outputStrength"] != "NONE" {
			return []string{path + "outputStrength: must be NONE for PROMPT_ATTACK filters"}
		}
		return nil
	}
	return s
}()

var topicSchema = withDetect([]field{
	{name: "name", kind: kindString, required: true, maxLen: 100},
	{name: "definition", kind: kindString, required: true, maxLen: 1000},
	{name: "examples", kind: kindStringList, def: emptyList},
	{name: "type", kind: kindString, enum: topicTypes, def: constant("DENY")},
}, blockActions, constant("BLOCK"))

var wordSchema = withDetect([]field{
	{name: "text", kind: kindString, required: true, maxLen: 100},
}, blockActions, constant("BLOCK"))

var managedWordSchema = withDetect([]field{
	{name: "type", kind: kindString, required: true, enum: managedWordTypes},
}, blockActions, constant("BLOCK"))

var piiEntitySchema = withDetect([]field{
	{name: "type", kind: kindString, required: true, enum: piiEntityTypes},
	{name: "action", kind: kindString, required: true, enum: sensitiveActions},
}, sensitiveActions, sibling("action"))

var regexSchema = withDetect([]field{
	{name: "name", kind: kindString, required: true, maxLen: 100},
	{name: "pattern", kind: kindString, required: true, maxLen: 500},
	{name: "description", kind: kindString, maxLen: 1000},
	{name: "action", kind: kindString, required: true, enum: sensitiveActions},
}, sensitiveActions, sibling("action"))

var groundingFilterSchema = &schema{fields: []field{
	{name: "type", kind: kindString, required: true, enum: groundingTypes},
	{name: "threshold", kind: kindNumber, required: true, min: float(0), max: float(0.99)},
	{name: "action", kind: kindString, enum: blockActions, def: constant("BLOCK")},
	{name: "enabled", kind: kindBool, def: constant(true)},
}}

// schemas is the static table keyed by policy type.
var schemas = map[Type]*schema{
	TypeContent: {fields: []field{
		{name: "filtersConfig", kind: kindObjectList, required: true, elem: contentFilterSchema},
		{name: "tierName", kind: kindString, enum: tierNames},
	}},
	TypeTopic: {fields: []field{
		{name: "topicsConfig", kind: kindObjectList, required: true, elem: topicSchema},
		{name: "tierName", kind: kindString, enum: tierNames},
	}},
	TypeWord: {
		fields: []field{
			{name: "wordsConfig", kind: kindObjectList, elem: wordSchema, def: emptyObjects},
			{name: "managedWordListsConfig", kind: kindObjectList, elem: managedWordSchema, def: emptyObjects},
		},
		anyOf: []string{"wordsConfig", "managedWordListsConfig"},
	},
	TypeSensitiveInformation: {
		fields: []field{
			{name: "piiEntitiesConfig", kind: kindObjectList, elem: piiEntitySchema, def: emptyObjects},
			{name: "regexesConfig", kind: kindObjectList, elem: regexSchema, def: emptyObjects},
		},
		anyOf: []string{"piiEntitiesConfig", "regexesConfig"},
	},
	TypeContextualGrounding: {fields: []field{
		{name: "filtersConfig", kind: kindObjectList, required: true, elem: groundingFilterSchema},
	}},
}
