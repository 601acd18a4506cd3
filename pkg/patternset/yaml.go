package patternset

// yamlPattern is the intermediate struct for one pattern entry of a
// pattern set file. Flags use the spelled-out "|"-separated form.
type yamlPattern struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	Expression       string   `yaml:"expression"`
	Flags            string   `yaml:"flags,omitempty"`
	Keywords         []string `yaml:"keywords,omitempty"`
	Examples         []string `yaml:"examples,omitempty"`
	NegativeExamples []string `yaml:"negative_examples,omitempty"`
}

// yamlPatternsFile is the top-level structure of a pattern set file:
// a "patterns" array.
type yamlPatternsFile struct {
	Patterns []yamlPattern `yaml:"patterns"`
}
