package valueobjects

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) IsValid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

func (v Visibility) IsPublic() bool {
	return v == VisibilityPublic
}

func (v Visibility) String() string {
	return string(v)
}
