package host

import (
	"math"

	"github.com/rolandbrake/piscript/internal/piscript/langerr"
	"github.com/rolandbrake/piscript/internal/piscript/screen"
	"github.com/rolandbrake/piscript/internal/piscript/value"
	"github.com/rolandbrake/piscript/internal/piscript/vm"
)

func noScreen() error {
	return langerr.New(langerr.Resource, 0, 0, "no screen attached to this VM")
}

func registerDraw(m *vm.VM) {
	m.RegisterNative("pixel", 3, func(h any, args []value.Value) (value.Value, error) {
		s, ok := asScreen(h)
		if !ok {
			return value.Nil, noScreen()
		}
		s.SetPixel(argInt(args, 0), argInt(args, 1), argInt(args, 2))
		return value.Nil, nil
	})
	m.RegisterNative("pixel_alpha", 4, func(h any, args []value.Value) (value.Value, error) {
		s, ok := asScreen(h)
		if !ok {
			return value.Nil, noScreen()
		}
		s.SetPixelAlpha(argInt(args, 0), argInt(args, 1), argInt(args, 2), argNumber(args, 3))
		return value.Nil, nil
	})
	m.RegisterNative("pixel_shaded", 4, func(h any, args []value.Value) (value.Value, error) {
		s, ok := asScreen(h)
		if !ok {
			return value.Nil, noScreen()
		}
		s.SetPixelShaded(argInt(args, 0), argInt(args, 1), argInt(args, 2), argNumber(args, 3))
		return value.Nil, nil
	})
	m.RegisterNative("line", 5, func(h any, args []value.Value) (value.Value, error) {
		s, ok := asScreen(h)
		if !ok {
			return value.Nil, noScreen()
		}
		drawLine(s, argInt(args, 0), argInt(args, 1), argInt(args, 2), argInt(args, 3), argInt(args, 4))
		return value.Nil, nil
	})
	m.RegisterNative("rect", 5, func(h any, args []value.Value) (value.Value, error) {
		s, ok := asScreen(h)
		if !ok {
			return value.Nil, noScreen()
		}
		fill := len(args) > 5 && args[5].AsBool()
		drawRect(s, argInt(args, 0), argInt(args, 1), argInt(args, 2), argInt(args, 3), argInt(args, 4), fill)
		return value.Nil, nil
	})
	m.RegisterNative("circle", 4, func(h any, args []value.Value) (value.Value, error) {
		s, ok := asScreen(h)
		if !ok {
			return value.Nil, noScreen()
		}
		fill := len(args) > 4 && args[4].AsBool()
		drawCircle(s, argInt(args, 0), argInt(args, 1), argInt(args, 2), argInt(args, 3), fill)
		return value.Nil, nil
	})
	m.RegisterNative("polygon", 2, func(h any, args []value.Value) (value.Value, error) {
		s, ok := asScreen(h)
		if !ok {
			return value.Nil, noScreen()
		}
		pts, ok := asList(args[0])
		if !ok {
			return value.Nil, wrongType("list of [x,y] pairs", "polygon")
		}
		drawPolygon(s, pts.Items, argInt(args, 1))
		return value.Nil, nil
	})
	m.RegisterNative("sprite", 3, func(h any, args []value.Value) (value.Value, error) {
		s, ok := asScreen(h)
		if !ok {
			return value.Nil, noScreen()
		}
		sp, ok := args[0].Obj.(*value.SpriteObj)
		if !ok {
			return value.Nil, wrongType("sprite", "sprite")
		}
		drawSprite(s, sp, argInt(args, 1), argInt(args, 2))
		return value.Nil, nil
	})
	m.RegisterNative("text", 3, func(h any, args []value.Value) (value.Value, error) {
		s, ok := asScreen(h)
		if !ok {
			return value.Nil, noScreen()
		}
		drawText(s, argString(args, 0), argInt(args, 1), argInt(args, 2), s.TextColor)
		return value.Nil, nil
	})
	m.RegisterNative("palette", 1, func(h any, args []value.Value) (value.Value, error) {
		idx := argInt(args, 0)
		if idx < 0 || idx >= len(screen.Palette) {
			return value.Nil, nil
		}
		c := screen.Palette[idx]
		vm := asVM(h)
		return value.FromObj(vm.NewList([]value.Value{
			value.Num(float64(c.R)), value.Num(float64(c.G)), value.Num(float64(c.B)),
		})), nil
	})
	m.RegisterNative("clear", 1, func(h any, args []value.Value) (value.Value, error) {
		s, ok := asScreen(h)
		if !ok {
			return value.Nil, noScreen()
		}
		s.Clear(argInt(args, 0))
		return value.Nil, nil
	})
	m.RegisterNative("present", 0, func(h any, args []value.Value) (value.Value, error) {
		s, ok := asScreen(h)
		if !ok {
			return value.Nil, noScreen()
		}
		s.Present()
		s.PollInput()
		return value.Nil, nil
	})
}

func drawLine(s *screen.Screen, x0, y0, x1, y1, idx int) {
	dx := int(math.Abs(float64(x1 - x0)))
	dy := -int(math.Abs(float64(y1 - y0)))
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		s.SetPixel(x0, y0, idx)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func drawRect(s *screen.Screen, x, y, w, hgt, idx int, fill bool) {
	if fill {
		for yy := y; yy < y+hgt; yy++ {
			for xx := x; xx < x+w; xx++ {
				s.SetPixel(xx, yy, idx)
			}
		}
		return
	}
	drawLine(s, x, y, x+w-1, y, idx)
	drawLine(s, x, y+hgt-1, x+w-1, y+hgt-1, idx)
	drawLine(s, x, y, x, y+hgt-1, idx)
	drawLine(s, x+w-1, y, x+w-1, y+hgt-1, idx)
}

func drawCircle(s *screen.Screen, cx, cy, r, idx int, fill bool) {
	x, y, d := r, 0, 1-r
	plot := func(x, y int) {
		if fill {
			drawLine(s, cx-x, cy+y, cx+x, cy+y, idx)
			drawLine(s, cx-x, cy-y, cx+x, cy-y, idx)
			drawLine(s, cx-y, cy+x, cx+y, cy+x, idx)
			drawLine(s, cx-y, cy-x, cx+y, cy-x, idx)
			return
		}
		s.SetPixel(cx+x, cy+y, idx)
		s.SetPixel(cx-x, cy+y, idx)
		s.SetPixel(cx+x, cy-y, idx)
		s.SetPixel(cx-x, cy-y, idx)
		s.SetPixel(cx+y, cy+x, idx)
		s.SetPixel(cx-y, cy+x, idx)
		s.SetPixel(cx+y, cy-x, idx)
		s.SetPixel(cx-y, cy-x, idx)
	}
	for x >= y {
		plot(x, y)
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

func drawPolygon(s *screen.Screen, points []value.Value, idx int) {
	n := len(points)
	for i := 0; i < n; i++ {
		a, aok := asList(points[i])
		b, bok := asList(points[(i+1)%n])
		if !aok || !bok || len(a.Items) < 2 || len(b.Items) < 2 {
			continue
		}
		ax, _ := a.Items[0].AsNumber()
		ay, _ := a.Items[1].AsNumber()
		bx, _ := b.Items[0].AsNumber()
		by, _ := b.Items[1].AsNumber()
		drawLine(s, int(ax), int(ay), int(bx), int(by), idx)
	}
}

func drawSprite(s *screen.Screen, sp *value.SpriteObj, ox, oy int) {
	for y := 0; y < sp.Height; y++ {
		for x := 0; x < sp.Width; x++ {
			idx := sp.Indices[y*sp.Width+x]
			if idx == 0 {
				continue // 0 is transparent
			}
			s.SetPixel(ox+x, oy+y, int(idx))
		}
	}
}
