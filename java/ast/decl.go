package ast

type AnnotationBuilder struct {
	typ Builder
}

func Annotation(typ Builder) AnnotationBuilder {
	return AnnotationBuilder{typ: typ}
}

func (b AnnotationBuilder) Build() (*Node, error) {
	typ, err := buildOne(b.typ, "annotation type", KindType)
	if err != nil {
		return nil, err
	}
	return &Node{kind: KindAnnotation, typ: typ}, nil
}

type MethodBuilder struct {
	returnType Builder
	name       string
	modifiers  []string
	annots     []AnnotationBuilder
	args       []ArgBuilder
	thrown     []Builder
	stmts      []Builder
}

// MethodDef declares a method with a body.
func MethodDef(returnType Builder, name string) MethodBuilder {
	return MethodBuilder{returnType: returnType, name: name}
}

func (b MethodBuilder) MakePublic() MethodBuilder {
	b.modifiers = with(b.modifiers, "public")
	return b
}

func (b MethodBuilder) WithAnnotation(a AnnotationBuilder) MethodBuilder {
	b.annots = with(b.annots, a)
	return b
}

func (b MethodBuilder) WithArgument(arg ArgBuilder) MethodBuilder {
	b.args = with(b.args, arg)
	return b
}

func (b MethodBuilder) WithThrownException(typ Builder) MethodBuilder {
	b.thrown = with(b.thrown, typ)
	return b
}

func (b MethodBuilder) WithStatement(stmt Builder) MethodBuilder {
	b.stmts = with(b.stmts, stmt)
	return b
}

func (b MethodBuilder) WithStatements(stmts ...Builder) MethodBuilder {
	b.stmts = with(b.stmts, stmts...)
	return b
}

func (b MethodBuilder) Build() (*Node, error) {
	if b.name == "" {
		return nil, constructionError("method without name")
	}
	rt, err := buildOne(b.returnType, "return type", KindType)
	if err != nil {
		return nil, err
	}
	annots, err := buildAll(b.annots, "method annotation", KindAnnotation)
	if err != nil {
		return nil, err
	}
	args, err := buildAll(b.args, "method parameter", KindArgument)
	if err != nil {
		return nil, err
	}
	thrown, err := buildAll(b.thrown, "thrown exception", KindType)
	if err != nil {
		return nil, err
	}
	body, err := Block().WithStatements(b.stmts...).Build()
	if err != nil {
		return nil, err
	}
	return &Node{
		kind:      KindMethod,
		text:      b.name,
		modifiers: b.modifiers,
		typ:       rt,
		annots:    annots,
		args:      args,
		thrown:    thrown,
		body:      body,
	}, nil
}

type ClassBuilder struct {
	name      string
	anonymous bool
	local     bool
	methods   []MethodBuilder
}

// ClassDef declares a class. Anonymous classes must have an empty name and
// are only usable as the body of New, which supplies their supertype.
func ClassDef(name string) ClassBuilder {
	return ClassBuilder{name: name}
}

func (b ClassBuilder) MakeAnonymous() ClassBuilder {
	b.anonymous = true
	return b
}

// MakeLocal marks the class as declared inside a method body.
func (b ClassBuilder) MakeLocal() ClassBuilder {
	b.local = true
	return b
}

func (b ClassBuilder) WithMethod(m MethodBuilder) ClassBuilder {
	b.methods = with(b.methods, m)
	return b
}

func (b ClassBuilder) Build() (*Node, error) {
	switch {
	case b.anonymous && b.name != "":
		return nil, constructionError("anonymous class cannot be named %q", b.name)
	case !b.anonymous && b.name == "":
		return nil, constructionError("class without name")
	}
	methods, err := buildAll(b.methods, "class method", KindMethod)
	if err != nil {
		return nil, err
	}
	if b.anonymous && len(methods) == 0 {
		return nil, constructionError("anonymous class without methods")
	}
	return &Node{
		kind:      KindClass,
		text:      b.name,
		anonymous: b.anonymous,
		local:     b.local,
		methods:   methods,
	}, nil
}
