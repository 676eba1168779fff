package engine

// Operation renders one template into one output file. OutputPath is relative
// to the context's output root unless absolute.
type Operation struct {
	TemplatePath string
	OutputPath   string
	Data         any
}

// Plan is an ordered list of operations executed as one batch.
type Plan struct {
	Operations []Operation
}

func NewPlan() *Plan {
	return &Plan{}
}

func (p *Plan) Add(templatePath, outputPath string, data any) {
	p.Operations = append(p.Operations, Operation{
		TemplatePath: templatePath,
		OutputPath:   outputPath,
		Data:         data,
	})
}

// Append adds every operation of other after the operations of p.
func (p *Plan) Append(other *Plan) {
	if other == nil {
		return
	}
	p.Operations = append(p.Operations, other.Operations...)
}

func (p *Plan) Len() int {
	return len(p.Operations)
}

// Outputs returns the output paths in plan order.
func (p *Plan) Outputs() []string {
	paths := make([]string, len(p.Operations))
	for i, op := range p.Operations {
		paths[i] = op.OutputPath
	}
	return paths
}
