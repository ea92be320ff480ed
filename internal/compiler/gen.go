package compiler

import "strings"

// Действия генератора. Все операнды интернированы до того, как эмитится
// инструкция, которая на них ссылается.

// genAdd: load left; add right; store в новый временный.
func (c *Context) genAdd(left, right int) int {
	c.em.Load(c.name(left))
	c.em.Add(c.name(right))
	temp := c.newTemp()
	c.em.Store(c.name(temp))
	return temp
}

// genMult: load left; multiply right; store в новый временный.
func (c *Context) genMult(left, right int) int {
	c.em.Load(c.name(left))
	c.em.Multiply(c.name(right))
	temp := c.newTemp()
	c.em.Store(c.name(temp))
	return temp
}

func (c *Context) genAssign(target, value int) {
	c.em.Load(c.name(value))
	c.em.Store(c.name(target))
}

func (c *Context) genPrintln(value int) {
	c.em.Load(c.name(value))
	c.em.DecOut()
	c.em.PrintChar('\n')
	c.em.AsciiOut()
}

// genStatementComment echoes the source line the statement starts on.
// A lone '\r' ends the echoed text: lines are counted by '\n' only.
func (c *Context) genStatementComment() {
	line, _, _ := strings.Cut(c.file.GetLine(c.tok.Line), "\r")
	c.em.Blank()
	c.em.Comment(line)
}

// genEnd: halt, then one declaration per slot in insertion order.
func (c *Context) genEnd() {
	c.em.Halt()
	for _, e := range c.syms.Declared() {
		c.em.Declare(e.Name, e.Init)
	}
}
