// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/contract-engine/pkg/types"
)

// --- employee_info ---

var birthDateRe = regexp.MustCompile(`(?i)(?:Geboortedatum|Date of birth|Birth date):\s*([^\n]+)`)

func employeeInfoFields(body string) types.Fields {
	fields := types.Fields{}
	if m := birthDateRe.FindStringSubmatch(body); m != nil {
		fields["employee_birth_date"] = types.String(strings.TrimSpace(m[1]))
	}
	return fields
}

// --- salary ---

var (
	salaryAmountRe = regexp.MustCompile(`€\s*([\d.,]+)`)

	// Checked in order; the first period phrase present wins.
	salaryPeriods = []struct {
		period  string
		pattern *regexp.Regexp
	}{
		{"monthly", regexp.MustCompile(`(?i)per\s+maand|per\s+month`)},
		{"yearly", regexp.MustCompile(`(?i)per\s+jaar|per\s+year`)},
		{"weekly", regexp.MustCompile(`(?i)per\s+week`)},
		{"hourly", regexp.MustCompile(`(?i)per\s+uur|per\s+hour`)},
	}
)

func salaryFields(body string) types.Fields {
	fields := types.Fields{}
	if m := salaryAmountRe.FindStringSubmatch(body); m != nil {
		fields["salary_amount"] = types.String(m[1])
	}
	for _, p := range salaryPeriods {
		if p.pattern.MatchString(body) {
			fields["salary_period"] = types.String(p.period)
			break
		}
	}
	return fields
}

// --- vacation ---

var (
	vacationDaysRe  = regexp.MustCompile(`(?i)(\d+)\s+vakantiedagen|(\d+)\s+vacation days`)
	vacationHoursRe = regexp.MustCompile(`(?i)(\d+)\s+vakantie-uren|(\d+)\s+vacation hours`)
)

func vacationFields(body string) types.Fields {
	fields := types.Fields{}
	if n, ok := intSubmatch(vacationDaysRe, body); ok {
		fields["vacation_days"] = types.Int(n)
	}
	if n, ok := intSubmatch(vacationHoursRe, body); ok {
		fields["vacation_hours"] = types.Int(n)
	}
	return fields
}

// --- working_hours ---

const weekday = `maandag|dinsdag|woensdag|donderdag|vrijdag|zaterdag|zondag|` +
	`monday|tuesday|wednesday|thursday|friday|saturday|sunday`

var (
	hoursPerWeekRe = regexp.MustCompile(`(?i)(\d+)\s+uur per week|(\d+)\s+hours per week`)
	fulltimeRe     = regexp.MustCompile(`(?i)\bfulltime\b|\bfull-time\b|\bvoltijd\b`)
	parttimeRe     = regexp.MustCompile(`(?i)\bparttime\b|\bpart-time\b|\bdeeltijd\b`)

	// "dinsdag tot vrijdag", "maandag t/m vrijdag", "Monday - Friday"
	workDaysRe = regexp.MustCompile(`(?i)\b(` + weekday + `)\b\s*(?:tot(?:\s+en\s+met)?|t/m|to|–|-|—)\s*\b(` + weekday + `)\b`)

	workTimeRe     = regexp.MustCompile(`(\d{1,2}:\d{2})\s*(?:tot|to)\s*(\d{1,2}:\d{2})`)
	workLocationRe = regexp.MustCompile(`(?:\bte\b|\bin\b)\s+([A-Z][a-zA-Zé-]+(?:\s+[A-Z][a-zA-Zé-]+)?)`)
	remoteWorkRe   = regexp.MustCompile(`(?i)thuiswerken|remote|work from home|hybrid`)
)

func workingHoursFields(body string) types.Fields {
	fields := types.Fields{}

	if n, ok := intSubmatch(hoursPerWeekRe, body); ok {
		fields["hours_per_week"] = types.Int(n)
	}

	switch {
	case fulltimeRe.MatchString(body):
		fields["employment_type"] = types.String("fulltime")
	case parttimeRe.MatchString(body):
		fields["employment_type"] = types.String("parttime")
	}

	if m := workDaysRe.FindStringSubmatch(body); m != nil {
		start, end := capitalize(m[1]), capitalize(m[2])
		if start != end {
			fields["work_days"] = types.String(start + " to " + end)
		} else {
			fields["work_days"] = types.String(start)
		}
	}

	if m := workTimeRe.FindStringSubmatch(body); m != nil {
		fields["work_hours"] = types.String(m[1] + " - " + m[2])
	}

	if m := workLocationRe.FindStringSubmatch(body); m != nil {
		fields["work_location"] = types.String(strings.TrimSpace(m[1]))
	}

	if remoteWorkRe.MatchString(body) {
		fields["remote_work_possible"] = types.Bool(true)
	}
	return fields
}

// --- probation ---

var (
	noProbationRe     = regexp.MustCompile(`(?i)geen proeftijd|no probation|no trial`)
	probationLengthRe = regexp.MustCompile(`(?i)(\d+)\s+(?:maand|maanden|month|months)`)
)

// probationFields always reports probation_period. "No" carries an
// explicit zero; "Unknown" carries a null month count so that missing
// information is not read as a zero-length probation.
func probationFields(body string) types.Fields {
	fields := types.Fields{}
	if noProbationRe.MatchString(body) {
		fields["probation_period"] = types.String("No")
		fields["probation_months"] = types.Int(0)
		return fields
	}
	if n, ok := intSubmatch(probationLengthRe, body); ok {
		fields["probation_period"] = types.String("Yes")
		fields["probation_months"] = types.Int(n)
		return fields
	}
	fields["probation_period"] = types.String("Unknown")
	fields["probation_months"] = types.Null()
	return fields
}

// --- contract_details ---

var (
	// \b keeps "onbepaalde tijd" (permanent) from matching as fixed term, so
// such contracts are typed permanent and get no end_date. A bare substring
// match on "bepaalde tijd" would type every Dutch permanent contract as
// fixed term.
	fixedTermRe = regexp.MustCompile(`(?i)\bbepaalde tijd\b|fixed term|temporary`)
	permanentRe = regexp.MustCompile(`(?i)onbepaalde tijd|permanent|indefinite`)

	jobTitleRe = regexp.MustCompile(`(?i)functie van\s+([^\n.]+)|position of\s+([^\n.]+)`)
	durationRe = regexp.MustCompile(`(?i)duur van\s+([^\n]+?)\s+(?:en|\.)`)

	startDateRes = anchoredDates(`(?:treedt.*?op|in dienst|start|from).+?`)
	endDateRes   = anchoredDates(`(?:tot|until|to)\s+`)

	caoNegativeRe    = regexp.MustCompile(`(?i)geen cao|geen collectieve|no cao|no collective|niet van toepassing`)
	caoAffirmativeRe = regexp.MustCompile(`(?i)(?:cao|collectieve arbeidsovereenkomst).*(?:is|wordt)\s+van toepassing|collective.*agreement.*(?:is\s+)?applicable`)
	caoNameRe        = regexp.MustCompile(`(?i)cao\s+([^\n.]+?)(?:\s+(?:is|wordt)\s+van toepassing|\.|$)`)
)

func contractDetailsFields(body string) types.Fields {
	fields := types.Fields{}

	fixedTerm := false
	switch {
	case fixedTermRe.MatchString(body):
		fields["contract_type"] = types.String("fixed_term")
		fixedTerm = true
	case permanentRe.MatchString(body):
		fields["contract_type"] = types.String("permanent")
	}

	if title, ok := submatch(jobTitleRe, body); ok {
		fields["job_title"] = types.String(strings.TrimSpace(title))
	}

	if date, ok := firstDate(startDateRes, body); ok {
		fields["start_date"] = types.String(date)
	}

	if m := durationRe.FindStringSubmatch(body); m != nil {
		fields["contract_duration"] = types.String(strings.TrimSpace(m[1]))
	}

	if fixedTerm {
		if date, ok := firstDate(endDateRes, body); ok {
			fields["end_date"] = types.String(date)
		}
	}

	switch {
	case caoNegativeRe.MatchString(body):
		fields["cao_applicable"] = types.Bool(false)
	case caoAffirmativeRe.MatchString(body):
		fields["cao_applicable"] = types.Bool(true)
		if m := caoNameRe.FindStringSubmatch(body); m != nil {
			fields["cao_name"] = types.String(strings.TrimSpace(m[1]))
		}
	}
	return fields
}

// --- pension ---

var (
	noPensionRe        = regexp.MustCompile(`(?i)geen.*pensioen|no.*pension`)
	mandatoryPensionRe = regexp.MustCompile(`(?i)verplicht.*pensioen|mandatory pension|required`)

	// Capitalized words directly before "Pensioenfonds": "ABP Pensioenfonds".
	pensionFundRe = regexp.MustCompile(`([A-Z][a-zA-Z]*?(?:\s+[A-Z][a-zA-Z]*?)*?)\s+Pensioenfonds`)
)

// pensionFields defaults the scheme to voluntary when the clause names a
// pension without saying it is mandatory.
func pensionFields(body string) types.Fields {
	fields := types.Fields{}
	if noPensionRe.MatchString(body) {
		fields["pension_scheme"] = types.String("None")
		return fields
	}

	if mandatoryPensionRe.MatchString(body) {
		fields["pension_scheme"] = types.String("mandatory")
	} else {
		fields["pension_scheme"] = types.String("voluntary")
	}

	if m := pensionFundRe.FindStringSubmatch(body); m != nil {
		fields["pension_fund"] = types.String(strings.TrimSpace(m[1]))
	}
	return fields
}

// --- termination ---

var (
	cannotTerminateRe = regexp.MustCompile(`(?i)kunnen.*niet.*opzeggen|cannot.*terminate|not.*terminable`)
	canTerminateRe    = regexp.MustCompile(`(?i)kunnen.*opzeggen|can.*terminate|may.*terminate`)
	noticePeriodRe    = regexp.MustCompile(`(?i)opzegtermijn.*?(\d+)\s+(maanden|maand|months|month|weken|weeks|week)`)
	statutoryNoticeRe = regexp.MustCompile(`(?i)wettelijke.*opzegtermijn|statutory.*notice|legal.*notice`)
	endOfMonthRe      = regexp.MustCompile(`(?i)tegen.*einde.*maand|end of.*month`)
)

// terminationFields only looks for notice details once the clause says
// early termination is allowed.
func terminationFields(body string) types.Fields {
	fields := types.Fields{}
	switch {
	case cannotTerminateRe.MatchString(body):
		fields["early_termination_allowed"] = types.Bool(false)
	case canTerminateRe.MatchString(body):
		fields["early_termination_allowed"] = types.Bool(true)

		if m := noticePeriodRe.FindStringSubmatch(body); m != nil {
			if n, err := strconv.ParseInt(m[1], 10, 64); err == nil {
				switch strings.ToLower(m[2]) {
				case "week", "weken", "weeks":
					fields["notice_period"] = types.String(fmt.Sprintf("%d weeks", n))
					fields["notice_period_weeks"] = types.Int(n)
				default:
					fields["notice_period"] = types.String(fmt.Sprintf("%d months", n))
					fields["notice_period_months"] = types.Int(n)
				}
			}
		}

		if statutoryNoticeRe.MatchString(body) {
			fields["statutory_notice"] = types.Bool(true)
		}
		if endOfMonthRe.MatchString(body) {
			fields["notice_timing"] = types.String("end_of_month")
		}
	}
	return fields
}

// --- confidentiality ---

var confidentialityFlags = []flag{
	{"confidentiality_required", regexp.MustCompile(`(?i)verplicht tot geheimhouding|confidentiality obligation|required.*confidential`)},
	{"confidentiality_scope_company", regexp.MustCompile(`(?i)bedrijf|company|business`)},
	{"confidentiality_scope_operations", regexp.MustCompile(`(?i)bedrijfsvoering|operations`)},
	{"confidentiality_scope_clients", regexp.MustCompile(`(?i)klanten|clients|customers`)},
	{"confidentiality_post_employment", regexp.MustCompile(`(?i)na beëindiging|after.*termination|post-employment`)},
}

func confidentialityFields(body string) types.Fields {
	fields := types.Fields{}
	applyFlags(fields, body, confidentialityFlags)
	return fields
}

// --- other ---

var (
	travelAmountRe    = regexp.MustCompile(`(?i)reiskostenvergoeding.*?€\s*([\d.,]+)|travel allowance.*?€\s*([\d.,]+)`)
	travelAllowanceRe = regexp.MustCompile(`(?i)reiskostenvergoeding|travel allowance`)

	otherFlags = []flag{
		{"expense_allowance", regexp.MustCompile(`(?i)onkostenvergoeding|expense allowance|expenses`)},
		{"laptop_provided", regexp.MustCompile(`(?i)laptop|notebook`)},
		{"phone_provided", regexp.MustCompile(`(?i)mobiele telefoon|mobile phone|smartphone`)},
		{"company_equipment_provided", regexp.MustCompile(`(?i)bedrijfsmiddelen|company equipment|tools`)},
		{"company_car", regexp.MustCompile(`(?i)leaseauto|company car|lease car`)},
		{"non_compete_clause", regexp.MustCompile(`(?i)concurrentiebeding|non-compete|competition clause`)},
		{"relation_clause", regexp.MustCompile(`(?i)relatiebeding|client clause|non-solicitation`)},
		{"training_available", regexp.MustCompile(`(?i)opleidingen|cursussen|training|education|course`)},
		{"sick_leave_procedure", regexp.MustCompile(`(?i)ziekmelding|sick leave|illness reporting`)},
		{"sick_leave_controls", regexp.MustCompile(`(?i)controlevoorschriften|control.*provisions|monitoring`)},
		{"collective_insurance", regexp.MustCompile(`(?i)collectieve verzekeringen|collective insurance|group insurance`)},
		{"health_insurance_contribution", regexp.MustCompile(`(?i)ziektekostenverzekering|health insurance`)},
	}
)

func otherFields(body string) types.Fields {
	fields := types.Fields{}
	if amount, ok := submatch(travelAmountRe, body); ok {
		fields["travel_allowance"] = types.String("€" + amount)
	} else if travelAllowanceRe.MatchString(body) {
		fields["travel_allowance_available"] = types.Bool(true)
	}
	applyFlags(fields, body, otherFlags)
	return fields
}
