package compiler

import (
	"accumc/internal/diag"
	"accumc/internal/symtab"
	"accumc/internal/token"
	"accumc/internal/trace"
)

const (
	msgStatementOrEOF = "Expecting statement or EOF"
	msgTermList       = `Expecting "+", ")", or ";"`
	msgFactorList     = `Expecting op, ")", or ";"`
	msgFactor         = "Expecting factor"
)

// parse recognizes Program and checks that nothing follows it.
func (c *Context) parse() error {
	if err := c.advance(); err != nil {
		return err
	}
	if err := c.program(); err != nil {
		return err
	}
	if c.tok.Kind != token.EOF {
		return diag.ExpectedEOF(c.tok)
	}
	return nil
}

func (c *Context) program() error {
	if err := c.statementList(); err != nil {
		return err
	}
	c.genEnd()
	return nil
}

// statementList итеративно: хвостовая рекурсия грамматики разворачивается в цикл.
func (c *Context) statementList() error {
	for {
		switch c.tok.Kind {
		case token.Ident, token.KwPrintln:
			if err := c.statement(); err != nil {
				return err
			}
		case token.EOF:
			return nil
		default:
			return diag.ExpectedConstruct(c.tok, msgStatementOrEOF)
		}
	}
}

func (c *Context) statement() error {
	span := trace.Begin(c.tracer, trace.ScopeStatement, "stmt", c.span)
	line := c.tok.Line
	c.genStatementComment()

	var err error
	if c.tok.Kind == token.Ident {
		err = c.assignmentStatement()
	} else {
		err = c.printlnStatement()
	}
	span.WithExtraInt("line", int(line))
	if err != nil {
		span.WithExtra("error", err.Error())
	}
	span.End("")
	return err
}

func (c *Context) assignmentStatement() error {
	target := c.syms.Intern(c.tok.Text, symtab.DefaultInit, true)
	if err := c.advance(); err != nil {
		return err
	}
	if err := c.consume(token.Assign); err != nil {
		return err
	}
	value, err := c.expr()
	if err != nil {
		return err
	}
	c.genAssign(target, value)
	return c.consume(token.Semicolon)
}

func (c *Context) printlnStatement() error {
	if err := c.advance(); err != nil {
		return err
	}
	if err := c.consume(token.LParen); err != nil {
		return err
	}
	value, err := c.expr()
	if err != nil {
		return err
	}
	c.genPrintln(value)
	if err := c.consume(token.RParen); err != nil {
		return err
	}
	return c.consume(token.Semicolon)
}

func (c *Context) expr() (int, error) {
	left, err := c.term()
	if err != nil {
		return 0, err
	}
	return c.termList(left)
}

func (c *Context) termList(left int) (int, error) {
	for {
		switch c.tok.Kind {
		case token.Plus:
			if err := c.advance(); err != nil {
				return 0, err
			}
			right, err := c.term()
			if err != nil {
				return 0, err
			}
			left = c.genAdd(left, right)
		case token.RParen, token.Semicolon:
			return left, nil
		default:
			return 0, diag.ExpectedConstruct(c.tok, msgTermList)
		}
	}
}

func (c *Context) term() (int, error) {
	left, err := c.factor()
	if err != nil {
		return 0, err
	}
	return c.factorList(left)
}

func (c *Context) factorList(left int) (int, error) {
	for {
		switch c.tok.Kind {
		case token.Star:
			if err := c.advance(); err != nil {
				return 0, err
			}
			right, err := c.factor()
			if err != nil {
				return 0, err
			}
			left = c.genMult(left, right)
		case token.Plus, token.RParen, token.Semicolon:
			return left, nil
		default:
			return 0, diag.ExpectedConstruct(c.tok, msgFactorList)
		}
	}
}

func (c *Context) factor() (int, error) {
	switch c.tok.Kind {
	case token.Unsigned:
		slot := c.syms.Intern(symtab.LiteralName(c.tok.Text), c.tok.Text, true)
		return slot, c.advance()

	case token.Plus, token.Minus:
		neg := c.tok.Kind == token.Minus
		if err := c.advance(); err != nil {
			return 0, err
		}
		digits := c.tok
		if err := c.consume(token.Unsigned); err != nil {
			return 0, err
		}
		if neg {
			return c.syms.Intern(symtab.NegLiteralName(digits.Text), "-"+digits.Text, true), nil
		}
		return c.syms.Intern(symtab.LiteralName(digits.Text), digits.Text, true), nil

	case token.Ident:
		slot := c.syms.Intern(c.tok.Text, symtab.DefaultInit, true)
		return slot, c.advance()

	case token.LParen:
		if err := c.advance(); err != nil {
			return 0, err
		}
		slot, err := c.expr()
		if err != nil {
			return 0, err
		}
		return slot, c.consume(token.RParen)

	case token.EOF:
		// выражение оборвано концом файла
		return 0, diag.UnexpectedEOF(c.tok)

	default:
		return 0, diag.ExpectedConstruct(c.tok, msgFactor)
	}
}
