package syntax

import sitter "github.com/smacker/go-tree-sitter"

// completesNormally approximates the Java reachability rules: it reports
// whether control can fall off the end of stmt. Only the literal true counts
// as a constant condition.
func (f *File) completesNormally(stmt *sitter.Node) bool {
	if stmt == nil {
		return true
	}
	switch stmt.Type() {
	case "return_statement", "throw_statement", "break_statement",
		"continue_statement", "yield_statement":
		return false
	case "block", "constructor_body":
		last := lastStatement(stmt)
		return last == nil || f.completesNormally(last)
	case "if_statement":
		alt := stmt.ChildByFieldName("alternative")
		if alt == nil {
			return true
		}
		return f.completesNormally(stmt.ChildByFieldName("consequence")) || f.completesNormally(alt)
	case "while_statement":
		return !isTrue(stmt.ChildByFieldName("condition")) || f.jumps(stmt.ChildByFieldName("body"), "break_statement", "")
	case "do_statement":
		body := stmt.ChildByFieldName("body")
		loops := f.completesNormally(body) || f.jumps(body, "continue_statement", "")
		return loops && !isTrue(stmt.ChildByFieldName("condition")) || f.jumps(body, "break_statement", "")
	case "for_statement":
		cond := stmt.ChildByFieldName("condition")
		return cond != nil && !isTrue(cond) || f.jumps(stmt.ChildByFieldName("body"), "break_statement", "")
	case "labeled_statement":
		inner := labeledBody(stmt)
		if inner == nil {
			return true
		}
		label := f.text(firstChildOfType(stmt, "identifier"))
		return f.completesNormally(inner) || f.jumps(inner, "break_statement", label)
	case "synchronized_statement":
		body := stmt.ChildByFieldName("body")
		if body == nil {
			body = lastChildOfType(stmt, "block")
		}
		return body == nil || f.completesNormally(body)
	case "try_statement", "try_with_resources_statement":
		return f.tryCompletesNormally(stmt)
	case "switch_expression", "switch_statement":
		return f.switchCompletesNormally(stmt)
	}
	return true
}

func (f *File) tryCompletesNormally(stmt *sitter.Node) bool {
	if fin := firstChildOfType(stmt, "finally_clause"); fin != nil {
		if block := firstChildOfType(fin, "block"); block != nil && !f.completesNormally(block) {
			return false
		}
	}
	if f.completesNormally(stmt.ChildByFieldName("body")) {
		return true
	}
	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		clause := stmt.NamedChild(i)
		if clause.Type() != "catch_clause" {
			continue
		}
		if body := clause.ChildByFieldName("body"); body != nil && f.completesNormally(body) {
			return true
		}
	}
	return false
}

func (f *File) switchCompletesNormally(stmt *sitter.Node) bool {
	block := stmt.ChildByFieldName("body")
	if block == nil || f.jumps(block, "break_statement", "") {
		return true
	}
	hasDefault := false
	var last *sitter.Node
	for i := 0; i < int(block.NamedChildCount()); i++ {
		child := block.NamedChild(i)
		switch child.Type() {
		case "switch_block_statement_group":
			last = child
		case "switch_rule":
			body := lastStatement(child)
			if body == nil || body.Type() == "expression_statement" || f.completesNormally(body) {
				return true
			}
		default:
			continue
		}
		if label := firstChildOfType(child, "switch_label"); label != nil && firstChildOfType(label, "default") != nil {
			hasDefault = true
		}
	}
	if !hasDefault {
		return true
	}
	if last == nil {
		return false
	}
	stmt = lastStatement(last)
	return stmt == nil || stmt.Type() == "switch_label" || f.completesNormally(stmt)
}

// jumps reports a break or continue below n that leaves n. With a label only
// jumps to that label count; without one, jumps nested in inner loops or
// switches target those instead.
func (f *File) jumps(n *sitter.Node, kind, label string) bool {
	if n == nil {
		return false
	}
	found := false
	var visit func(n *sitter.Node, nested bool)
	visit = func(n *sitter.Node, nested bool) {
		if found || isTypeScope(n) || n.Type() == "lambda_expression" {
			return
		}
		if n.Type() == kind {
			target := f.text(firstChildOfType(n, "identifier"))
			found = label != "" && target == label || label == "" && target == "" && !nested
			return
		}
		switch n.Type() {
		case "while_statement", "do_statement", "for_statement", "enhanced_for_statement":
			nested = true
		case "switch_expression", "switch_statement":
			if kind == "break_statement" {
				nested = true
			}
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			visit(n.NamedChild(i), nested)
		}
	}
	visit(n, false)
	return found
}

// lastStatement is the last named child that is not a comment.
func lastStatement(n *sitter.Node) *sitter.Node {
	for i := int(n.NamedChildCount()) - 1; i >= 0; i-- {
		if child := n.NamedChild(i); !isComment(child) {
			return child
		}
	}
	return nil
}

func labeledBody(n *sitter.Node) *sitter.Node {
	for i := int(n.NamedChildCount()) - 1; i >= 0; i-- {
		if child := n.NamedChild(i); child.Type() != "identifier" && !isComment(child) {
			return child
		}
	}
	return nil
}

func isTrue(cond *sitter.Node) bool {
	for cond != nil && (cond.Type() == "parenthesized_expression" || cond.Type() == "condition") {
		cond = cond.NamedChild(0)
	}
	return cond != nil && cond.Type() == "true"
}

func firstChildOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child.Type() == typ {
			return child
		}
	}
	return nil
}
