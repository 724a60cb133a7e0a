package compiler

import (
	"github.com/rolandbrake/piscript/internal/piscript/token"
	"github.com/rolandbrake/piscript/internal/piscript/value"
)

// targetKind tags what kind of storage location an assignable expression
// resolved to: every accepted kind supports both load and store bytecode.
type targetKind int

const (
	tgNone targetKind = iota
	tgLocal
	tgGlobal
	tgUpvalue
	tgIndexed // index or member access; base/key already captured into temps
)

type assignTarget struct {
	kind targetKind
	slot byte
}

// tempSlots returns the two function-local slots used to stash the
// base/key of the most recently parsed index or member access, so a
// trailing assignment operator can store back into it without
// re-evaluating (and re-running side effects of) the base/key expressions.
// The slots themselves are reserved once per frame by reserveTemps.
func (f *funcScope) tempSlots() (base, key int) {
	return f.tmpBase, f.tmpKey
}

// isAssignOp reports whether k is one of the assignment-form operators.
func isAssignOp(k token.Kind) (BinOp, bool, bool) {
	switch k {
	case token.ASSIGN:
		return 0, false, true
	case token.WALRUS:
		return 0, false, true
	case token.PLUSEQ:
		return BinAdd, true, true
	case token.MINUSEQ:
		return BinSub, true, true
	case token.STAREQ:
		return BinMul, true, true
	case token.SLASHEQ:
		return BinDiv, true, true
	case token.PERCENTEQ:
		return BinMod, true, true
	case token.PIPEEQ:
		return BinBitOr, true, true
	case token.CARETEQ:
		return BinBitXor, true, true
	case token.AMPEQ:
		return BinBitAnd, true, true
	default:
		return 0, false, false
	}
}

// expression parses a full expression, including any trailing assignment.
func (c *Compiler) expression() error {
	return c.assignment()
}

func (c *Compiler) assignment() error {
	startPos := c.pos
	tgt, err := c.parseTargetOrValue()
	if err != nil {
		return err
	}
	op, isCompound, isAssign := isAssignOp(c.peek().Kind)
	if !isAssign {
		return nil // tgt's value (or loaded value) is already on the stack
	}
	if tgt.kind == tgNone {
		t := c.tokens[startPos]
		return c.errAt(t, "invalid assignment target")
	}
	c.advance() // consume the assignment operator

	if isCompound {
		// Current value is already on the stack from parseTargetOrValue.
		if err := c.assignmentRHS(); err != nil {
			return err
		}
		c.emit1(OpBinary, byte(op))
	} else {
		c.emit(OpPop) // discard the value parseTargetOrValue eagerly loaded
		if err := c.assignmentRHS(); err != nil {
			return err
		}
	}
	c.storeTarget(tgt)
	return nil
}

// assignmentRHS parses the right-hand side, which may itself be another
// assignment (`a = b = 1`), falling back to the ternary-and-below grammar.
func (c *Compiler) assignmentRHS() error {
	return c.assignment()
}

func (c *Compiler) storeTarget(tgt assignTarget) {
	switch tgt.kind {
	case tgLocal:
		c.emit(OpDupTop)
		c.emit1(OpStoreLocal, tgt.slot)
	case tgGlobal:
		c.emit(OpDupTop)
		c.emit1(OpStoreGlobal, tgt.slot)
	case tgUpvalue:
		c.emit(OpDupTop)
		c.emit1(OpStoreUpvalue, tgt.slot)
	case tgIndexed:
		base, key := c.cur.tempSlots()
		c.emit1(OpLoadLocal, byte(base))
		c.emit1(OpLoadLocal, byte(key))
		c.emit(OpSetItem)
	}
}

// parseTargetOrValue parses a ternary-and-below expression, leaving its
// value on the stack, and returns an assignTarget describing it if (and
// only if) it is grammatically assignable: a bare local/global/upvalue
// name, or an index/member access.
func (c *Compiler) parseTargetOrValue() (assignTarget, error) {
	return c.ternary()
}

// --- precedence climb ----------------------------------------------------

func (c *Compiler) ternary() (assignTarget, error) {
	tgt, err := c.orExpr()
	if err != nil {
		return tgt, err
	}
	if c.match(token.QUESTION) {
		tgt = assignTarget{}
		elseJump := c.emitJump(OpJumpIfFalse)
		c.emit(OpPop) // JUMP_IF_FALSE only peeks; discard the truthy condition
		if err := c.expression(); err != nil {
			return tgt, err
		}
		endJump := c.emitJump(OpJump)
		c.patchJump(elseJump)
		c.emit(OpPop) // discard the falsy condition before the else branch
		if _, err := c.expect(token.COLON, "ternary"); err != nil {
			return tgt, err
		}
		if err := c.expression(); err != nil {
			return tgt, err
		}
		c.patchJump(endJump)
	}
	return tgt, nil
}

// binaryLevel is a generic left-associative binary precedence level driven
// by a table of (token kind -> BinOp) and the next-higher-precedence
// parser function.
type binEntry struct {
	tok token.Kind
	op  BinOp
}

func (c *Compiler) leftAssocBinary(next func() (assignTarget, error), ops []binEntry) (assignTarget, error) {
	tgt, err := next()
	if err != nil {
		return tgt, err
	}
	for {
		matched := false
		for _, e := range ops {
			if c.check(e.tok) {
				c.advance()
				tgt = assignTarget{}
				if _, err := next(); err != nil {
					return tgt, err
				}
				c.emit1(OpBinary, byte(e.op))
				matched = true
				break
			}
		}
		if !matched {
			return tgt, nil
		}
	}
}

func (c *Compiler) orExpr() (assignTarget, error) {
	tgt, err := c.andExpr()
	if err != nil {
		return tgt, err
	}
	for c.match(token.OROR) {
		tgt = assignTarget{}
		shortCircuit := c.emitJump(OpJumpIfTrue)
		c.emit(OpPop)
		if _, err := c.andExpr(); err != nil {
			return tgt, err
		}
		c.patchJump(shortCircuit)
	}
	return tgt, nil
}

func (c *Compiler) andExpr() (assignTarget, error) {
	tgt, err := c.inExpr()
	if err != nil {
		return tgt, err
	}
	for c.match(token.ANDAND) {
		tgt = assignTarget{}
		shortCircuit := c.emitJump(OpJumpIfFalse)
		c.emit(OpPop)
		if _, err := c.inExpr(); err != nil {
			return tgt, err
		}
		c.patchJump(shortCircuit)
	}
	return tgt, nil
}

func (c *Compiler) inExpr() (assignTarget, error) {
	tgt, err := c.rangeExpr()
	if err != nil {
		return tgt, err
	}
	for c.match(token.IN) {
		tgt = assignTarget{}
		if _, err := c.rangeExpr(); err != nil {
			return tgt, err
		}
		c.emit1(OpCompare, byte(CmpIn))
	}
	return tgt, nil
}

// rangeExpr parses `..` with an optional `:step`, producing PUSH_RANGE.
func (c *Compiler) rangeExpr() (assignTarget, error) {
	tgt, err := c.bitOr()
	if err != nil {
		return tgt, err
	}
	if c.match(token.DOTDOT) {
		tgt = assignTarget{}
		if _, err := c.bitOr(); err != nil {
			return tgt, err
		}
		if c.match(token.COLON) {
			if _, err := c.bitOr(); err != nil {
				return tgt, err
			}
		} else {
			c.emit2(OpLoadConst, constOne(c))
		}
		c.emit(OpPushRange)
	}
	return tgt, nil
}

func constOne(c *Compiler) uint16 {
	return c.storeConst(value.Num(1))
}

func (c *Compiler) bitOr() (assignTarget, error) {
	return c.leftAssocBinary(c.bitXor, []binEntry{{token.PIPE, BinBitOr}})
}
func (c *Compiler) bitXor() (assignTarget, error) {
	return c.leftAssocBinary(c.bitAnd, []binEntry{{token.CARET, BinBitXor}})
}
func (c *Compiler) bitAnd() (assignTarget, error) {
	return c.leftAssocBinary(c.shift, []binEntry{{token.AMP, BinBitAnd}})
}
func (c *Compiler) shift() (assignTarget, error) {
	return c.leftAssocBinary(c.equality, []binEntry{
		{token.SHL, BinShl}, {token.SHR, BinShr}, {token.USHR, BinUShr},
	})
}

// cmpEntry pairs a token with the CompareOp it drives, for the chained
// comparison levels (equality, relational).
type cmpEntry struct {
	tok token.Kind
	op  CompareOp
}

// equality and relational implement chained comparisons: `a < b < c`
// lowers to `a < b && b < c`, reloading the middle operand from a reserved
// local per chain link, preserving short-circuit evaluation.
func (c *Compiler) equality() (assignTarget, error) {
	return c.chainedCompare(c.relational, []cmpEntry{
		{token.EQ, CmpEq}, {token.NEQ, CmpNeq}, {token.IS, CmpIs},
	})
}

func (c *Compiler) relational() (assignTarget, error) {
	return c.chainedCompare(c.additive, []cmpEntry{
		{token.LT, CmpLt}, {token.LE, CmpLe},
		{token.GT, CmpGt}, {token.GE, CmpGe},
	})
}

// chainedCompare parses one or more comparisons at the same precedence
// level, lowering `a < b < c` to the equivalent of `a < b && b < c` without
// evaluating `b` twice: the shared operand is stashed in a reserved local
// slot (chainSlot) after each comparison and reloaded as the left operand
// of the next link. Each intermediate result short-circuits the chain via
// a JUMP_IF_FALSE, matching the lazy evaluation `&&` already uses.
func (c *Compiler) chainedCompare(next func() (assignTarget, error), ops []cmpEntry) (assignTarget, error) {
	tgt, err := next() // stack: [left]
	if err != nil {
		return tgt, err
	}
	var endJumps []int
	first := true
	for {
		e, ok := matchCmp(c, ops)
		if !ok {
			break
		}
		tgt = assignTarget{}
		if !first {
			c.emit1(OpLoadLocal, byte(c.cur.chainSlot()))
		}
		first = false
		if _, err := next(); err != nil { // stack: [left, right]
			return tgt, err
		}
		c.emit(OpDupTop) // stack: [left, right, right]
		c.emit1(OpStoreLocal, byte(c.cur.chainSlot()))
		c.emit1(OpCompare, byte(e.op)) // consumes left,right -> stack: [bool]
		if nextIsComparator(c, ops) {
			j := c.emitJump(OpJumpIfFalse)
			endJumps = append(endJumps, j)
			c.emit(OpPop)
		}
	}
	for _, j := range endJumps {
		c.patchJump(j)
	}
	return tgt, nil
}

func matchCmp(c *Compiler, ops []cmpEntry) (cmpEntry, bool) {
	for _, e := range ops {
		if c.check(e.tok) {
			c.advance()
			return e, true
		}
	}
	return cmpEntry{}, false
}

func nextIsComparator(c *Compiler, ops []cmpEntry) bool {
	for _, e := range ops {
		if c.check(e.tok) {
			return true
		}
	}
	return false
}

func (c *Compiler) additive() (assignTarget, error) {
	return c.leftAssocBinary(c.dotProduct, []binEntry{{token.PLUS, BinAdd}, {token.MINUS, BinSub}})
}
func (c *Compiler) dotProduct() (assignTarget, error) {
	return c.leftAssocBinary(c.multiplicative, []binEntry{{token.AT, BinDot}})
}
func (c *Compiler) multiplicative() (assignTarget, error) {
	return c.leftAssocBinary(c.power, []binEntry{
		{token.STAR, BinMul}, {token.SLASH, BinDiv}, {token.PERCENT, BinMod},
	})
}

// power is right-associative: parse the left operand, and if `**` follows,
// recurse into power itself (not multiplicative) for the right operand.
func (c *Compiler) power() (assignTarget, error) {
	tgt, err := c.unary()
	if err != nil {
		return tgt, err
	}
	if c.match(token.STARSTAR) {
		tgt = assignTarget{}
		if _, err := c.power(); err != nil {
			return tgt, err
		}
		c.emit1(OpBinary, byte(BinPow))
	}
	return tgt, nil
}

func (c *Compiler) unary() (assignTarget, error) {
	t := c.peek()
	switch t.Kind {
	case token.PLUS:
		c.advance()
		if _, err := c.unary(); err != nil {
			return assignTarget{}, err
		}
		c.emit1(OpUnary, byte(UnPos))
		return assignTarget{}, nil
	case token.MINUS:
		c.advance()
		if _, err := c.unary(); err != nil {
			return assignTarget{}, err
		}
		c.emit1(OpUnary, byte(UnNeg))
		return assignTarget{}, nil
	case token.BANG:
		c.advance()
		if _, err := c.unary(); err != nil {
			return assignTarget{}, err
		}
		c.emit1(OpUnary, byte(UnNot))
		return assignTarget{}, nil
	case token.TILDE:
		c.advance()
		if _, err := c.unary(); err != nil {
			return assignTarget{}, err
		}
		c.emit1(OpUnary, byte(UnBitNot))
		return assignTarget{}, nil
	case token.HASH:
		c.advance()
		if _, err := c.unary(); err != nil {
			return assignTarget{}, err
		}
		c.emit1(OpUnary, byte(UnLen))
		return assignTarget{}, nil
	case token.TYPEOF:
		c.advance()
		if _, err := c.unary(); err != nil {
			return assignTarget{}, err
		}
		c.emit1(OpUnary, byte(UnTypeof))
		return assignTarget{}, nil
	case token.INC, token.DEC:
		return c.prefixIncDec(t.Kind)
	default:
		return c.postfix()
	}
}

func (c *Compiler) prefixIncDec(kind token.Kind) (assignTarget, error) {
	c.advance()
	tgt, err := c.postfix()
	if err != nil {
		return assignTarget{}, err
	}
	if tgt.kind == tgNone {
		return assignTarget{}, c.errAt(c.peek(), "invalid target for %s", incDecName(kind))
	}
	op := BinAdd
	if kind == token.DEC {
		op = BinSub
	}
	c.emit2(OpLoadConst, constOne(c))
	c.emit1(OpBinary, byte(op))
	c.storeTarget(tgt)
	return assignTarget{}, nil
}

func incDecName(k token.Kind) string {
	if k == token.INC {
		return "++"
	}
	return "--"
}
