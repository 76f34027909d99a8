package meta

// Action method and summary output values of an aggregate action.
const (
	SummaryGrouped  = "grouped"
	SummaryAppended = "appended"
)

var operatorOrder = []OperatorType{
	Filter, Sort, Aggregate,
	Tag, ColApply, ColAssign,
	Constant, ValueMapping, Formatter,
}

var operatorMeta = map[OperatorType]OperatorMeta{
	Filter:       {Type: Filter, Title: "Filter"},
	Sort:         {Type: Sort, Title: "Sort"},
	Aggregate:    {Type: Aggregate, Title: "Aggregate"},
	Tag:          {Type: Tag, Title: "Tag"},
	ColApply:     {Type: ColApply, Title: "Column apply"},
	ColAssign:    {Type: ColAssign, Title: "Column assign"},
	Constant:     {Type: Constant, Title: "Constant"},
	ValueMapping: {Type: ValueMapping, Title: "Value mapping"},
	Formatter:    {Type: Formatter, Title: "Formatter"},
}

var actionMethodOptions = []Option{
	{Value: "mean", Label: "Mean"},
	{Value: "count", Label: "Count"},
	{Value: "sum", Label: "Sum"},
	{Value: "max", Label: "Max"},
	{Value: "min", Label: "Min"},
	{Value: "std", Label: "Standard Deviation"},
}

var operatorParams = map[OperatorType][]ParamMeta{
	Filter: {
		{
			Key:           "by",
			UIType:        UIStringList,
			Description:   "columns you want to keep",
			Placeholder:   "ClientId, ClientName, Position",
			HelperContent: "string list of column names, separated by ,",
		},
		{
			Key:           "condition",
			UIType:        UIString,
			Description:   "condition to select rows",
			Placeholder:   "ClientAccountId!='123456' && ClientName != '123456'",
			HelperContent: "multiple logic align with sql/python",
			Required:      true,
		},
	},
	Sort: {
		{
			Key:           "by",
			UIType:        UIStringList,
			Description:   "columns you want to sort by",
			Placeholder:   "ClientId, ClientName, Date",
			HelperContent: "reference for multiple sort level",
		},
		{
			Key:           "ascending",
			UIType:        UIMappedBoolean,
			Description:   "ascending or descending for each index",
			Placeholder:   "bool: true/false",
			HelperContent: "false: descent for column in by, true for ascending",
			ReferenceKey:  "by",
		},
	},
	Aggregate: {
		{
			Key:           "by",
			UIType:        UIStringList,
			Description:   "columns you want to aggregate by",
			Placeholder:   "ClientId, ClientName etc",
			HelperContent: "multiple select align with sql/python",
			Required:      true,
		},
		{
			Key:           "actions",
			UIType:        UISubAction,
			Description:   "what function to do with grouped data",
			Placeholder:   "choose from count/sum/max/...",
			HelperContent: "grouped data is reduced by each action in order",
			ActionTypes:   []string{"sum", "mean", "count", "min", "max", "std"},
		},
	},
	Tag: {
		{
			Key:           "col_name",
			UIType:        UIString,
			Description:   "your tag column name",
			Placeholder:   "AlertNotice",
			HelperContent: "if not set, with a new column name, its value will be tags",
		},
		{
			Key:           "tags",
			UIType:        UIStringList,
			Description:   "tags align with the condition case level",
			Placeholder:   "tag option: xyz, green, match etc.",
			HelperContent: "first tag for all row matches in first condition, etc.",
		},
		{
			Key:           "conditions",
			UIType:        UIMappedString,
			Description:   "conditions to filter data rows",
			Placeholder:   "ClientAccountId > 0 || ClientAccountID > 2023100001",
			HelperContent: "condition list, with FIRST match to fill into logic",
			ReferenceKey:  "tags",
		},
		{
			Key:           "default_tag",
			UIType:        UIString,
			Description:   "for rows unmatched, set the tag value as this",
			Placeholder:   "null",
			HelperContent: "if not set, unmatched rows still have NULL value in tag column",
		},
	},
	ColApply: {
		{
			Key:           "on",
			UIType:        UIStringList,
			Description:   "columns calculate in time series index",
			Placeholder:   "apply: npv/decay/etc.",
			HelperContent: "apply function on this column list",
		},
		{
			Key:           "value_expr",
			UIType:        UIMappedString,
			Description:   "applied columns for calculated result",
			Placeholder:   "last Price Change, Last OpenClose Change",
			HelperContent: "rename column names if needed",
			ReferenceKey:  "on",
		},
		{
			Key:           "method",
			UIType:        UIString,
			Description:   "function logic applied for each column",
			Placeholder:   "lambda or vectorized",
			HelperContent: "choose between lambda or vectorized",
		},
		{
			Key:           "condition",
			UIType:        UIString,
			Description:   "condition to select rows",
			Placeholder:   "Client Account > xxxxxxx, with field match",
			HelperContent: "multiple logic align with sql/python",
		},
	},
	ColAssign: {
		{
			Key:           "on",
			UIType:        UIString,
			Description:   "columns calculate in time series index",
			Placeholder:   "vectorized or lambda",
			HelperContent: "vectorized or lambda",
		},
		{
			Key:           "col_name",
			UIType:        UIString,
			Description:   "new column name for result",
			Placeholder:   "transformedColumn",
			HelperContent: "can be new column or overwrite existing column",
		},
		{
			Key:           "method",
			UIType:        UIString,
			Description:   "function logic applied for each column",
			Placeholder:   "lambda x: x.shift(1)",
			HelperContent: "language align with pandas",
		},
		{
			Key:         "value_expr",
			UIType:      UIString,
			Description: "calculate expression for each row data",
			Placeholder: "vectorized sample: quantity * price / 100000, " +
				"lambda sample: lambda x: x['quantity'] * x['price'] if str(x['Client Account']).startswith('1') else None",
			HelperContent: "need use existing column name and keep expression correct",
		},
		{
			Key:           "condition",
			UIType:        UIString,
			Description:   "condition to select rows",
			Placeholder:   "Client Account > xxxxxxx, with field match",
			HelperContent: "multiple logic align with sql/python",
		},
	},
	Constant: {
		{
			Key:           "columns",
			UIType:        UIMap,
			Description:   "assign constant values to columns",
			Placeholder:   "e.g., columnA: value1, columnB: value2",
			HelperContent: "map format: column name -> constant value",
			Required:      true,
		},
	},
	ValueMapping: {
		{
			Key:           "mode",
			UIType:        UISelect,
			Description:   "mapping mode",
			Placeholder:   "select map or replace",
			HelperContent: "map: create new mapped column, replace: overwrite existing column",
			Required:      true,
			Options: []Option{
				{Value: "map", Label: "Map (Create New)"},
				{Value: "replace", Label: "Replace (Overwrite)"},
			},
		},
		{
			Key:           "mappings",
			UIType:        UINestedMap,
			Description:   "value mapping rules",
			Placeholder:   "e.g., columnA: {AAA: aaa, BBB: bbb}",
			HelperContent: "nested map format: column name -> {original value -> mapped value}",
			Required:      true,
		},
		{
			Key:           "default",
			UIType:        UIString,
			Description:   "default value for unmapped items",
			Placeholder:   "e.g., unknown",
			HelperContent: "if value not found in mapping, use this default",
		},
	},
	Formatter: {},
}

var aggregateActionParams = []ParamMeta{
	{
		Key:           "method",
		UIType:        UISelect,
		HelperContent: "the method you want to do with grouped data",
		Required:      true,
		Options:       actionMethodOptions,
	},
	{
		Key:           "on",
		UIType:        UIStringList,
		HelperContent: "after grouped, which columns you want to operate on",
		Required:      true,
	},
	{
		Key:           "rename",
		UIType:        UIMappedString,
		HelperContent: "mapped to `on`, rename the calculate result column name",
		ReferenceKey:  "on",
	},
	{
		Key:           "summary_label",
		UIType:        UIString,
		Description:   "only use in appended mode, default as SubGroup",
		HelperContent: "heading value of group result row",
	},
	{
		Key:           "summary_output",
		UIType:        UIRadio,
		Description:   "two mode for table returned",
		HelperContent: "grouped mode returns only grouped result, appended mode sort and insert group result row",
		Options: []Option{
			{Value: SummaryGrouped, Label: SummaryGrouped},
			{Value: SummaryAppended, Label: SummaryAppended},
		},
	},
}
