package compiler

import (
	"github.com/rolandbrake/piscript/internal/piscript/token"
	"github.com/rolandbrake/piscript/internal/piscript/value"
)

const maxCallArgs = 255
const maxListMapEntries = 65535

// postfix parses a primary expression followed by any chain of member
// access, indexing, slicing, and calls. Every index/member step eagerly
// loads its value via GET_ITEM (after stashing base/key into the reserved
// temp locals), so the result doubles as the "current value" a trailing
// compound-assignment operator needs; calls and slices always reset the
// target descriptor to tgNone since neither is assignable.
func (c *Compiler) postfix() (assignTarget, error) {
	tgt, err := c.primary()
	if err != nil {
		return tgt, err
	}
	for {
		switch c.peek().Kind {
		case token.DOT:
			c.advance()
			nameTok, err := c.expect(token.IDENT, "member access")
			if err != nil {
				return assignTarget{}, err
			}
			keyIdx := c.storeConst(value.FromObj(value.NewString(c.lexeme(nameTok))))
			base, key := c.cur.tempSlots()
			c.emit(OpDupTop)
			c.emit1(OpStoreLocal, byte(base))
			c.emit2(OpLoadConst, keyIdx)
			c.emit(OpDupTop)
			c.emit1(OpStoreLocal, byte(key))
			c.emit(OpGetItem)
			tgt = assignTarget{kind: tgIndexed}
		case token.LBRACKET:
			c.advance()
			next, err := c.bracketSuffix()
			if err != nil {
				return assignTarget{}, err
			}
			tgt = next
		case token.LPAREN:
			c.advance()
			argc, err := c.finishCallArgs()
			if err != nil {
				return assignTarget{}, err
			}
			c.emit1(OpCall, byte(argc))
			tgt = assignTarget{}
		default:
			return tgt, nil
		}
	}
}

// bracketSuffix parses the inside of a `[...]` postfix (opening bracket
// already consumed, base value already sitting on top of the stack),
// distinguishing plain indexing (`[expr]`) from slicing
// (`[start?:end?:step?]`, every part optional).
func (c *Compiler) bracketSuffix() (assignTarget, error) {
	base, _ := c.cur.tempSlots()
	c.emit(OpDupTop)
	c.emit1(OpStoreLocal, byte(base)) // stash base in case this turns out to be an index target

	hadStart := false
	if !c.check(token.COLON) {
		if err := c.expression(); err != nil {
			return assignTarget{}, err
		}
		hadStart = true
	}

	if c.match(token.COLON) {
		if !hadStart {
			c.emit(OpPushNil)
		}
		if err := c.sliceBound(); err != nil {
			return assignTarget{}, err
		}
		if c.match(token.COLON) {
			if err := c.sliceBound(); err != nil {
				return assignTarget{}, err
			}
		} else {
			c.emit(OpPushNil)
		}
		if _, err := c.expect(token.RBRACKET, "slice"); err != nil {
			return assignTarget{}, err
		}
		c.emit(OpPushSlice)
		return assignTarget{}, nil
	}

	if !hadStart {
		return assignTarget{}, c.errAt(c.peek(), "empty index")
	}
	if _, err := c.expect(token.RBRACKET, "index"); err != nil {
		return assignTarget{}, err
	}
	_, key := c.cur.tempSlots()
	c.emit(OpDupTop)
	c.emit1(OpStoreLocal, byte(key))
	c.emit(OpGetItem)
	return assignTarget{kind: tgIndexed}, nil
}

// sliceBound parses one optional slice component, pushing PUSH_NIL when
// it's elided (immediately followed by `:` or `]`).
func (c *Compiler) sliceBound() error {
	if c.check(token.COLON) || c.check(token.RBRACKET) {
		c.emit(OpPushNil)
		return nil
	}
	return c.expression()
}

func (c *Compiler) finishCallArgs() (int, error) {
	n := 0
	for !c.check(token.RPAREN) {
		if n >= maxCallArgs {
			return 0, c.errAt(c.peek(), "too many arguments (max %d)", maxCallArgs)
		}
		if err := c.expression(); err != nil {
			return 0, err
		}
		n++
		if !c.match(token.COMMA) {
			break
		}
	}
	if _, err := c.expect(token.RPAREN, "call arguments"); err != nil {
		return 0, err
	}
	return n, nil
}
