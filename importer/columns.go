package importer

import "ponto/punch"

// Columns lists accepted header aliases per field. Headers are compared after
// folding case, stripping accents and dropping spaces, '_' and '-'.
type Columns struct {
	Employee     []string `mapstructure:"employee"`
	Date         []string `mapstructure:"date"`
	ActualIn     []string `mapstructure:"actual_in"`
	ActualOut    []string `mapstructure:"actual_out"`
	ScheduledIn  []string `mapstructure:"scheduled_in"`
	ScheduledOut []string `mapstructure:"scheduled_out"`
	Supervisor   []string `mapstructure:"supervisor"`
}

func DefaultColumns() Columns {
	return Columns{
		Employee:     []string{"Nome", "Funcionario", "Colaborador", "Employee", "Name"},
		Date:         []string{"Data", "Dia", "Date"},
		ActualIn:     []string{"Entrada 1", "Entrada", "Actual In", "Clock In"},
		ActualOut:    []string{"Saída 1", "Saida", "Actual Out", "Clock Out"},
		ScheduledIn:  []string{"Turnos.ENTRADA", "Turno Entrada", "Scheduled In", "Shift Start"},
		ScheduledOut: []string{"Turnos.SAIDA", "Turno Saida", "Scheduled Out", "Shift End"},
		Supervisor:   []string{"Supervisor", "Gestor", "Coordenador", "Manager"},
	}
}

// WithDefaults fills empty alias lists from DefaultColumns.
func (c Columns) WithDefaults() Columns {
	defaults := DefaultColumns()
	pick := func(values, fallback []string) []string {
		if len(values) == 0 {
			return fallback
		}
		return values
	}
	return Columns{
		Employee:     pick(c.Employee, defaults.Employee),
		Date:         pick(c.Date, defaults.Date),
		ActualIn:     pick(c.ActualIn, defaults.ActualIn),
		ActualOut:    pick(c.ActualOut, defaults.ActualOut),
		ScheduledIn:  pick(c.ScheduledIn, defaults.ScheduledIn),
		ScheduledOut: pick(c.ScheduledOut, defaults.ScheduledOut),
		Supervisor:   pick(c.Supervisor, defaults.Supervisor),
	}
}

type requiredColumn struct {
	name    string
	aliases []string
}

func (r requiredColumn) label() string {
	if len(r.aliases) > 0 {
		return r.aliases[0]
	}
	return r.name
}

func (c Columns) required() []requiredColumn {
	return []requiredColumn{
		{name: "employee", aliases: c.Employee},
		{name: "date", aliases: c.Date},
		{name: "actual_in", aliases: c.ActualIn},
		{name: "actual_out", aliases: c.ActualOut},
		{name: "scheduled_in", aliases: c.ScheduledIn},
		{name: "scheduled_out", aliases: c.ScheduledOut},
	}
}

// Check reports every required field that has no matching header. The
// supervisor column is optional.
func (c Columns) Check(source string, table *Table) error {
	missing := make([]string, 0)
	for _, column := range c.required() {
		found := false
		for _, alias := range column.aliases {
			if table.HasHeader(alias) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, column.label())
		}
	}
	if len(missing) > 0 {
		return &MissingColumnError{Source: source, Columns: missing}
	}
	return nil
}

func (c Columns) RawRow(source string, record Record) punch.RawRow {
	return punch.RawRow{
		RowNumber:    record.RowNumber,
		Source:       source,
		Employee:     record.Get(c.Employee...),
		Date:         record.Get(c.Date...),
		ActualIn:     record.Get(c.ActualIn...),
		ActualOut:    record.Get(c.ActualOut...),
		ScheduledIn:  record.Get(c.ScheduledIn...),
		ScheduledOut: record.Get(c.ScheduledOut...),
		Supervisor:   record.Get(c.Supervisor...),
		NumericCells: c.numericCells(record),
	}
}

func (c Columns) numericCells(record Record) punch.Field {
	var out punch.Field
	for field, aliases := range map[punch.Field][]string{
		punch.FieldDate:         c.Date,
		punch.FieldActualIn:     c.ActualIn,
		punch.FieldActualOut:    c.ActualOut,
		punch.FieldScheduledIn:  c.ScheduledIn,
		punch.FieldScheduledOut: c.ScheduledOut,
	} {
		if record.IsNumeric(aliases...) {
			out |= field
		}
	}
	return out
}
