package doodle

import "fmt"

// Shape is a renderable node owned by a scene graph. Factories return the
// concrete types (*Rectangle, *Circle, *Ellipse, *Polygon, *Text, *Sprite);
// *Container groups other shapes.
type Shape interface {
	// Kind reports the concrete shape variant.
	Kind() ShapeKind
	// ID is a process-unique, non-zero identifier.
	ID() uint32

	Name() string
	SetName(name string)

	Position() Vec2
	SetPosition(x, y float64)
	Scale() (sx, sy float64)
	SetScale(sx, sy float64)
	Rotation() float64
	SetRotation(radians float64)

	// Fill is the fill color; sprites use it as a tint.
	Fill() Color
	SetFill(c Color)

	// LocalBounds is the shape's extent in its own coordinate space.
	LocalBounds() Rect
	// Bounds is the world-space axis-aligned bounding box.
	Bounds() Rect
	// WorldTransform is the local-to-world matrix [a, b, c, d, tx, ty].
	WorldTransform() [6]float64

	// Parent returns the containing group, or nil when detached.
	Parent() *Container

	Visible() bool
	SetVisible(visible bool)
	Interactive() bool
	SetInteractive(interactive bool)

	// On registers fn for the given pointer event. Handlers fire in
	// registration order.
	On(event EventType, fn func(PointerEvent))

	base() *node
	containsLocal(x, y float64) bool
	emit(s *Scene, world [6]float64)
}

// nodeIDCounter is not atomic; shapes are created on the game loop.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// node holds the state shared by every shape variant.
type node struct {
	id     uint32
	name   string
	self   Shape
	parent *Container

	// Transform (local)
	x, y     float64
	scaleX   float64
	scaleY   float64
	rotation float64

	fill        Color
	visible     bool
	interactive bool

	handlers [numEventTypes][]func(PointerEvent)

	// UserData is free for the caller.
	UserData any
}

// init sets the common defaults shared by all constructors.
func (n *node) init(self Shape, fill Color) {
	n.id = nextNodeID()
	n.self = self
	n.scaleX = 1
	n.scaleY = 1
	n.fill = fill
	n.visible = true
}

func (n *node) base() *node { return n }

// ID returns the shape's identifier.
func (n *node) ID() uint32 { return n.id }

// Name returns the optional debug name.
func (n *node) Name() string { return n.name }

// SetName sets an optional debug name used in log output.
func (n *node) SetName(name string) { n.name = name }

// Position returns the local position relative to the parent.
func (n *node) Position() Vec2 { return Vec2{n.x, n.y} }

// SetPosition sets the local position relative to the parent.
func (n *node) SetPosition(x, y float64) {
	n.x = x
	n.y = y
}

// Scale returns the local scale factors.
func (n *node) Scale() (sx, sy float64) { return n.scaleX, n.scaleY }

// SetScale sets the local scale factors.
func (n *node) SetScale(sx, sy float64) {
	n.scaleX = sx
	n.scaleY = sy
}

// Rotation returns the local rotation in radians.
func (n *node) Rotation() float64 { return n.rotation }

// SetRotation sets the local rotation in radians, around the shape's origin.
func (n *node) SetRotation(r float64) { n.rotation = r }

// Fill returns the fill color (the tint for sprites).
func (n *node) Fill() Color { return n.fill }

// SetFill changes the fill color.
func (n *node) SetFill(c Color) { n.fill = c }

// Visible reports whether the shape is drawn and hit-tested.
func (n *node) Visible() bool { return n.visible }

// SetVisible shows or hides the shape and its children.
func (n *node) SetVisible(v bool) { n.visible = v }

// Interactive reports whether the shape receives pointer events.
func (n *node) Interactive() bool { return n.interactive }

// SetInteractive enables or disables pointer events for the shape.
func (n *node) SetInteractive(v bool) { n.interactive = v }

// Parent returns the containing group, or nil when detached.
func (n *node) Parent() *Container { return n.parent }

// On registers a per-shape pointer handler.
func (n *node) On(event EventType, fn func(PointerEvent)) {
	if event >= numEventTypes {
		panic(fmt.Sprintf("doodle: unknown event type %d", event))
	}
	n.handlers[event] = append(n.handlers[event], fn)
}

// Bounds returns the world-space bounding box of the shape.
func (n *node) Bounds() Rect {
	return transformRect(n.worldTransform(), n.self.LocalBounds())
}

// Scene returns the scene the shape is attached to, or nil when it is not
// reachable from a scene root.
func (n *node) Scene() *Scene {
	var top *Container
	for p := n.parent; p != nil; p = p.parent {
		top = p
	}
	if top == nil {
		if c, ok := n.self.(*Container); ok {
			return c.scene
		}
		return nil
	}
	return top.scene
}

// --- Container ---

// Container is a group node with no visual output. Children inherit the
// container's transform and visibility. The scene root is a Container.
type Container struct {
	node
	children []Shape
	scene    *Scene // non-nil on a scene root only
}

// NewContainer creates an empty, detached group.
func NewContainer() *Container {
	c := &Container{}
	c.init(c, ColorWhite)
	return c
}

// Kind returns KindContainer.
func (c *Container) Kind() ShapeKind { return KindContainer }

// Add appends child to this container. If child already has a parent it is
// removed from that parent first.
// Panics if child is nil or child is an ancestor of this container (cycle).
func (c *Container) Add(child Shape) {
	if child == nil {
		panic("doodle: cannot add nil child")
	}
	if isAncestor(child, c) {
		panic("doodle: adding child would create a cycle")
	}
	cn := child.base()
	if cn.parent != nil {
		cn.parent.removeChildByPtr(child)
	}
	cn.parent = c
	c.children = append(c.children, child)
	if debugEnabled() {
		debugCheckTreeDepth(cn)
		debugCheckChildCount(c)
	}
}

// AddAt inserts child at the given index among its siblings. Same
// reparenting and cycle-check behavior as Add.
func (c *Container) AddAt(child Shape, index int) {
	if child == nil {
		panic("doodle: cannot add nil child")
	}
	if isAncestor(child, c) {
		panic("doodle: adding child would create a cycle")
	}
	cn := child.base()
	if cn.parent != nil {
		cn.parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(c.children) {
		panic("doodle: child index out of range")
	}
	cn.parent = c
	c.children = append(c.children, nil)
	copy(c.children[index+1:], c.children[index:])
	c.children[index] = child
	if debugEnabled() {
		debugCheckTreeDepth(cn)
		debugCheckChildCount(c)
	}
}

// Remove detaches child from this container. It reports false if child is
// not a direct child. The child is not destroyed and can be added again.
func (c *Container) Remove(child Shape) bool {
	if child == nil || child.base().parent != c {
		return false
	}
	c.removeChildByPtr(child)
	child.base().parent = nil
	return true
}

// RemoveAll detaches every child.
func (c *Container) RemoveAll() {
	for i, child := range c.children {
		child.base().parent = nil
		c.children[i] = nil
	}
	c.children = c.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (c *Container) Children() []Shape {
	return c.children
}

// NumChildren returns the number of children.
func (c *Container) NumChildren() int {
	return len(c.children)
}

// ChildAt returns the child at the given index.
func (c *Container) ChildAt(index int) Shape {
	return c.children[index]
}

// LocalBounds is the union of the children's bounds in the container's
// coordinate space. An empty container has zero-size bounds at its origin.
func (c *Container) LocalBounds() Rect {
	var r Rect
	first := true
	for _, child := range c.children {
		cb := transformRect(computeLocalTransform(child.base()), child.LocalBounds())
		if first {
			r = cb
			first = false
			continue
		}
		r = r.Union(cb)
	}
	return r
}

// Containers are never hit targets themselves.
func (c *Container) containsLocal(x, y float64) bool { return false }

func (c *Container) emit(s *Scene, world [6]float64) {
	for _, child := range c.children {
		s.traverse(child, world)
	}
}

// --- Helpers ---

// isAncestor reports whether candidate is c or one of c's ancestors.
func isAncestor(candidate Shape, c *Container) bool {
	for p := c; p != nil; p = p.parent {
		if Shape(p) == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from c.children without clearing its parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (c *Container) removeChildByPtr(child Shape) {
	for i, ch := range c.children {
		if ch == child {
			copy(c.children[i:], c.children[i+1:])
			c.children[len(c.children)-1] = nil
			c.children = c.children[:len(c.children)-1]
			return
		}
	}
}

// describe returns "kind#id" or "kind:name" for log output.
func (n *node) describe() string {
	if n.name != "" {
		return n.self.Kind().String() + ":" + n.name
	}
	return fmt.Sprintf("%s#%d", n.self.Kind(), n.id)
}
