package validation

// Kind is the JSON shape a field must coerce to.
type Kind int

const (
	String Kind = iota
	Integer
)

// Rule describes one input field. Tag is a validator/v10 tag applied to the
// coerced value.
type Rule struct {
	Field    string
	Kind     Kind
	Required bool
	Nullable bool
	Tag      string
}

// Schema is the rule set of one entity. ReadOnly fields are assigned by the
// server and rejected when they appear in input.
type Schema struct {
	Entity   string
	Rules    []Rule
	ReadOnly []string
}

// SpecialCharacters is the set a password must draw at least one character from.
const SpecialCharacters = "!@#$%^&*()-_=+[]{}|;:'\",.<>/?`~\\"

var UserSchema = Schema{
	Entity: "user",
	Rules: []Rule{
		{Field: "username", Kind: String, Required: true, Tag: "min=3,max=50,username"},
		{Field: "email", Kind: String, Required: true, Tag: "max=120,email"},
		{Field: "password", Kind: String, Required: true, Tag: "min=8,special"},
	},
	ReadOnly: []string{"id", "created_at"},
}

var PostSchema = Schema{
	Entity: "post",
	Rules: []Rule{
		{Field: "title", Kind: String, Required: true, Tag: "min=3,max=120"},
		{Field: "content", Kind: String, Required: true, Tag: "min=10"},
		{Field: "user_id", Kind: Integer, Required: true, Tag: "min=1"},
		{Field: "category_id", Kind: Integer, Nullable: true, Tag: "min=1"},
	},
	ReadOnly: []string{"id", "date_posted"},
}

var CommentSchema = Schema{
	Entity: "comment",
	Rules: []Rule{
		{Field: "content", Kind: String, Required: true, Tag: "min=5"},
		{Field: "user_id", Kind: Integer, Required: true, Tag: "min=1"},
		{Field: "post_id", Kind: Integer, Required: true, Tag: "min=1"},
	},
	ReadOnly: []string{"id", "date_commented"},
}

var CategorySchema = Schema{
	Entity: "category",
	Rules: []Rule{
		{Field: "name", Kind: String, Required: true, Tag: "min=3,max=100,category_name"},
	},
	ReadOnly: []string{"id"},
}
