package encode

type EncodeOption func(*EncState)

func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}
func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// ShowLocks tags the topmost locked value of each locked subtree with
// !locked. Values below it are locked too and are not tagged.
func ShowLocks(v bool) EncodeOption {
	return func(es *EncState) { es.locks = v }
}

// ShowTypes appends the descriptor of each scalar and collection as a
// trailing comment.
func ShowTypes(v bool) EncodeOption {
	return func(es *EncState) { es.types = v }
}
