package menu

// JobKind is the edit a toggle performs
type JobKind int

const (
	JobChangeAccess JobKind = iota + 1
	JobMakeClassFinal
	JobMakeClassNotFinal
	JobMakeClassExtern
	JobMakeClassNotExtern
	JobMakeMethodFinal
	JobMakeMethodNotFinal
	JobAddStaticModifier
	JobRemoveStaticModifier
	JobAddInlineModifier
	JobRemoveInlineModifier
	JobAddNoCompletionMeta
	JobRemoveNoCompletionMeta
)

var jobNames = map[JobKind]string{
	JobChangeAccess:           "ChangeAccess",
	JobMakeClassFinal:         "MakeClassFinal",
	JobMakeClassNotFinal:      "MakeClassNotFinal",
	JobMakeClassExtern:        "MakeClassExtern",
	JobMakeClassNotExtern:     "MakeClassNotExtern",
	JobMakeMethodFinal:        "MakeMethodFinal",
	JobMakeMethodNotFinal:     "MakeMethodNotFinal",
	JobAddStaticModifier:      "AddStaticModifier",
	JobRemoveStaticModifier:   "RemoveStaticModifier",
	JobAddInlineModifier:      "AddInlineModifier",
	JobRemoveInlineModifier:   "RemoveInlineModifier",
	JobAddNoCompletionMeta:    "AddNoCompletionMeta",
	JobRemoveNoCompletionMeta: "RemoveNoCompletionMeta",
}

func (j JobKind) String() string {
	if name, ok := jobNames[j]; ok {
		return name
	}
	return "Unknown"
}
