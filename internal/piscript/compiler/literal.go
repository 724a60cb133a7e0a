package compiler

import (
	"github.com/rolandbrake/piscript/internal/piscript/token"
	"github.com/rolandbrake/piscript/internal/piscript/value"
)

// primary parses the innermost expression forms: literals, identifiers,
// `this`, parenthesized expressions, arrow functions, and list/map
// literals. It returns an assignTarget describing whether the result is a
// bare name that an assignment operator could target.
func (c *Compiler) primary() (assignTarget, error) {
	t := c.peek()
	switch t.Kind {
	case token.NUMBER:
		c.advance()
		n := parseNumber(c.lexeme(t))
		c.emit2(OpLoadConst, c.storeConst(value.Num(n)))
		return assignTarget{}, nil
	case token.STRING:
		c.advance()
		s := unescapeString(c.lexeme(t))
		c.emit2(OpLoadConst, c.storeConst(value.FromObj(value.NewString(s))))
		return assignTarget{}, nil
	case token.TRUE:
		c.advance()
		c.emit2(OpLoadConst, constTrue)
		return assignTarget{}, nil
	case token.FALSE:
		c.advance()
		c.emit2(OpLoadConst, constFalse)
		return assignTarget{}, nil
	case token.NIL:
		c.advance()
		c.emit(OpPushNil)
		return assignTarget{}, nil
	case token.THIS:
		c.advance()
		if c.cur.parent == nil {
			return assignTarget{}, c.errAt(t, "this outside function")
		}
		c.emit1(OpLoadLocal, 0)
		return assignTarget{}, nil
	case token.IDENT:
		return c.identifier()
	case token.LPAREN:
		return c.parenOrArrow()
	case token.LBRACKET:
		return c.listLiteral()
	case token.LBRACE:
		return c.mapLiteral()
	default:
		return assignTarget{}, c.errAt(t, "unexpected token in expression")
	}
}

// identifier resolves a bare name to a local, upvalue, or global slot,
// emits its load, and arrow-function-checks for a trailing `->` that turns
// it into a single-parameter arrow function instead.
func (c *Compiler) identifier() (assignTarget, error) {
	t := c.advance()
	name := c.lexeme(t)

	if c.check(token.ARROW) {
		return c.singleParamArrow(name)
	}

	if idx, ok := c.cur.resolveLocal(name); ok {
		c.emit1(OpLoadLocal, byte(idx))
		return assignTarget{kind: tgLocal, slot: byte(idx)}, nil
	}
	if idx, ok := c.cur.resolveUpvalue(name); ok {
		c.emit1(OpLoadUpvalue, byte(idx))
		return assignTarget{kind: tgUpvalue, slot: byte(idx)}, nil
	}

	// print isn't a keyword (no LET/FUN-style token.Kind reserves it) but
	// its call form compiles straight to the PRINT opcode instead of
	// resolving a global named "print" and CALLing it, since nothing ever
	// registers that global; a local/upvalue named print (checked above)
	// still shadows it like any other name would.
	if name == "print" && c.check(token.LPAREN) {
		return c.printCall()
	}

	idx := c.internName(name)
	c.emit1(OpLoadGlobal, idx)
	return assignTarget{kind: tgGlobal, slot: idx}, nil
}

// printCall compiles `print(expr)` directly to PRINT, the dedicated
// opcode the bytecode format reserves for it, rather than a CALL against a
// global. PRINT pops exactly one value, so the expression form still needs
// a value left behind for exprStatement's trailing POP: PUSH_NIL stands in
// for that.
func (c *Compiler) printCall() (assignTarget, error) {
	c.advance() // consume '('
	if c.check(token.RPAREN) {
		return assignTarget{}, c.errAt(c.peek(), "print requires one argument")
	}
	if err := c.expression(); err != nil {
		return assignTarget{}, err
	}
	if c.check(token.COMMA) {
		return assignTarget{}, c.errAt(c.peek(), "print takes exactly one argument")
	}
	if _, err := c.expect(token.RPAREN, "print arguments"); err != nil {
		return assignTarget{}, err
	}
	c.emit(OpPrint)
	c.emit(OpPushNil)
	return assignTarget{}, nil
}

// parenOrArrow disambiguates `(expr)` from `(params) -> ...` by using the
// lexer's precomputed bracket link to peek at the token right after the
// matching `)` without backtracking.
func (c *Compiler) parenOrArrow() (assignTarget, error) {
	open := c.peek()
	if open.CloseAt >= 0 && c.tokens[open.CloseAt+1].Kind == token.ARROW {
		if err := c.emitClosureExpr(""); err != nil {
			return assignTarget{}, err
		}
		return assignTarget{}, nil
	}
	c.advance()
	if err := c.expression(); err != nil {
		return assignTarget{}, err
	}
	if _, err := c.expect(token.RPAREN, "grouped expression"); err != nil {
		return assignTarget{}, err
	}
	return assignTarget{}, nil
}

// singleParamArrow compiles `name -> expr`, a one-parameter arrow function
// with no parentheses, after `name` has already been consumed.
func (c *Compiler) singleParamArrow(param string) (assignTarget, error) {
	c.advance() // consume `->`
	parent := c.cur
	c.cur = newFuncScope(parent, "")
	c.cur.proto.ParamList = []value.Param{{Name: param}}
	c.internReservedChild()
	c.cur.addLocal("this")
	c.cur.addLocal(param)
	c.cur.addLocal("args")
	c.cur.reserveTemps()
	if err := c.expression(); err != nil {
		return assignTarget{}, err
	}
	c.emit(OpReturn)
	childProto := c.cur.proto
	numUp := len(childProto.Upvalues)
	c.cur = parent
	idx := c.storeConst(value.FromObj(childProto))
	c.emit2(OpLoadConst, idx)
	packed := (uint16(1) << 8) | uint16(numUp)
	c.emit2(OpPushClosure, packed)
	return assignTarget{}, nil
}

// listLiteral parses `[e1, e2, ...]`, pushing each element then emitting
// PUSH_LIST with the element count.
func (c *Compiler) listLiteral() (assignTarget, error) {
	c.advance()
	n := 0
	for !c.check(token.RBRACKET) {
		if n >= maxListMapEntries {
			return assignTarget{}, c.errAt(c.peek(), "list literal too large")
		}
		if err := c.expression(); err != nil {
			return assignTarget{}, err
		}
		n++
		if !c.match(token.COMMA) {
			break
		}
	}
	if _, err := c.expect(token.RBRACKET, "list literal"); err != nil {
		return assignTarget{}, err
	}
	c.emit2(OpPushList, uint16(n))
	return assignTarget{}, nil
}

// mapLiteral parses `{key: value, ...}`. A key is either an identifier or a
// string literal; a value may be an ordinary expression or a method-literal
// shorthand `name(params) { body }`, compiled as a closure that captures
// `this` from the surrounding map once the map is constructed.
func (c *Compiler) mapLiteral() (assignTarget, error) {
	c.advance()
	n := 0
	for !c.check(token.RBRACE) {
		if n >= maxListMapEntries {
			return assignTarget{}, c.errAt(c.peek(), "map literal too large")
		}
		keyName, err := c.mapKey()
		if err != nil {
			return assignTarget{}, err
		}
		c.emit2(OpLoadConst, c.storeConst(value.FromObj(value.NewString(keyName))))

		if c.check(token.LPAREN) {
			if err := c.emitClosureExpr(keyName); err != nil {
				return assignTarget{}, err
			}
		} else {
			if _, err := c.expect(token.COLON, "map entry"); err != nil {
				return assignTarget{}, err
			}
			if err := c.expression(); err != nil {
				return assignTarget{}, err
			}
		}
		n++
		if !c.match(token.COMMA) {
			break
		}
	}
	if _, err := c.expect(token.RBRACE, "map literal"); err != nil {
		return assignTarget{}, err
	}
	c.emit2(OpPushMap, uint16(n))
	return assignTarget{}, nil
}

func (c *Compiler) mapKey() (string, error) {
	t := c.peek()
	switch t.Kind {
	case token.IDENT, token.CONSTRUCTOR:
		c.advance()
		return c.lexeme(t), nil
	case token.STRING:
		c.advance()
		return unescapeString(c.lexeme(t)), nil
	default:
		return "", c.errAt(t, "map key")
	}
}
