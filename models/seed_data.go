package models

// GovernorateSeed is one row of the canonical governorate table.
type GovernorateSeed struct {
	Name         string
	NameEn       string
	Code         string
	DisplayOrder int
}

// EgyptianGovernorates is the canonical seed table of the 27 governorates.
// Seeding is keyed by the unique 3-letter code and is idempotent.
var EgyptianGovernorates = []GovernorateSeed{
	{Name: "القاهرة", NameEn: "Cairo", Code: "CAI", DisplayOrder: 1},
	{Name: "الجيزة", NameEn: "Giza", Code: "GIZ", DisplayOrder: 2},
	{Name: "الإسكندرية", NameEn: "Alexandria", Code: "ALX", DisplayOrder: 3},
	{Name: "الدقهلية", NameEn: "Dakahlia", Code: "DAK", DisplayOrder: 4},
	{Name: "البحر الأحمر", NameEn: "Red Sea", Code: "RSS", DisplayOrder: 5},
	{Name: "البحيرة", NameEn: "Beheira", Code: "BEH", DisplayOrder: 6},
	{Name: "الفيوم", NameEn: "Fayoum", Code: "FAY", DisplayOrder: 7},
	{Name: "الغربية", NameEn: "Gharbia", Code: "GHR", DisplayOrder: 8},
	{Name: "الإسماعيلية", NameEn: "Ismailia", Code: "ISM", DisplayOrder: 9},
	{Name: "المنوفية", NameEn: "Monufia", Code: "MNF", DisplayOrder: 10},
	{Name: "المنيا", NameEn: "Minya", Code: "MNY", DisplayOrder: 11},
	{Name: "القليوبية", NameEn: "Qalyubia", Code: "QLY", DisplayOrder: 12},
	{Name: "الوادي الجديد", NameEn: "New Valley", Code: "WAD", DisplayOrder: 13},
	{Name: "شمال سيناء", NameEn: "North Sinai", Code: "NSI", DisplayOrder: 14},
	{Name: "جنوب سيناء", NameEn: "South Sinai", Code: "SSI", DisplayOrder: 15},
	{Name: "الشرقية", NameEn: "Sharqia", Code: "SHR", DisplayOrder: 16},
	{Name: "سوهاج", NameEn: "Sohag", Code: "SOH", DisplayOrder: 17},
	{Name: "السويس", NameEn: "Suez", Code: "SUZ", DisplayOrder: 18},
	{Name: "أسوان", NameEn: "Aswan", Code: "ASW", DisplayOrder: 19},
	{Name: "أسيوط", NameEn: "Asyut", Code: "ASY", DisplayOrder: 20},
	{Name: "بني سويف", NameEn: "Beni Suef", Code: "BNS", DisplayOrder: 21},
	{Name: "بورسعيد", NameEn: "Port Said", Code: "PTS", DisplayOrder: 22},
	{Name: "دمياط", NameEn: "Damietta", Code: "DAM", DisplayOrder: 23},
	{Name: "كفر الشيخ", NameEn: "Kafr El Sheikh", Code: "KFS", DisplayOrder: 24},
	{Name: "مطروح", NameEn: "Matrouh", Code: "MAT", DisplayOrder: 25},
	{Name: "الأقصر", NameEn: "Luxor", Code: "LUX", DisplayOrder: 26},
	{Name: "قنا", NameEn: "Qena", Code: "QEN", DisplayOrder: 27},
}

// ComplaintTypeSeed is one row of the canonical complaint-type catalog.
type ComplaintTypeSeed struct {
	Name                string
	NameEn              string
	Category            Category
	TargetCouncil       TargetCouncil
	DefaultPriority     Priority
	SLADays             int
	RequiresAttachments bool
	DisplayOrder        int
}

// ParliamentComplaintTypes are the types handled by the lower chamber.
// Seeding is keyed by the unique English name and is idempotent.
var ParliamentComplaintTypes = []ComplaintTypeSeed{
	{Name: "البنية التحتية والطرق", NameEn: "Infrastructure and Roads", Category: CategoryInfrastructure, TargetCouncil: CouncilParliament, DefaultPriority: PriorityMedium, SLADays: 45, RequiresAttachments: true, DisplayOrder: 1},
	{Name: "الخدمات الصحية", NameEn: "Health Services", Category: CategoryHealth, TargetCouncil: CouncilParliament, DefaultPriority: PriorityHigh, SLADays: 30, RequiresAttachments: false, DisplayOrder: 2},
	{Name: "التعليم والجامعات", NameEn: "Education and Universities", Category: CategoryEducation, TargetCouncil: CouncilParliament, DefaultPriority: PriorityMedium, SLADays: 60, RequiresAttachments: false, DisplayOrder: 3},
	{Name: "الأمن والشرطة", NameEn: "Security and Police", Category: CategorySecurity, TargetCouncil: CouncilParliament, DefaultPriority: PriorityUrgent, SLADays: 15, RequiresAttachments: true, DisplayOrder: 4},
	{Name: "الخدمات العامة", NameEn: "Public Services", Category: CategoryPublicServices, TargetCouncil: CouncilParliament, DefaultPriority: PriorityMedium, SLADays: 30, RequiresAttachments: false, DisplayOrder: 5},
	{Name: "النقل والمواصلات", NameEn: "Transportation", Category: CategoryTransportation, TargetCouncil: CouncilParliament, DefaultPriority: PriorityMedium, SLADays: 45, RequiresAttachments: true, DisplayOrder: 6},
	{Name: "البيئة والنظافة", NameEn: "Environment and Cleanliness", Category: CategoryEnvironment, TargetCouncil: CouncilParliament, DefaultPriority: PriorityMedium, SLADays: 30, RequiresAttachments: true, DisplayOrder: 7},
	{Name: "الإسكان والعقارات", NameEn: "Housing and Real Estate", Category: CategoryHousing, TargetCouncil: CouncilParliament, DefaultPriority: PriorityMedium, SLADays: 60, RequiresAttachments: true, DisplayOrder: 8},
	{Name: "العمل والتوظيف", NameEn: "Employment and Labor", Category: CategoryEmployment, TargetCouncil: CouncilParliament, DefaultPriority: PriorityMedium, SLADays: 45, RequiresAttachments: false, DisplayOrder: 9},
	{Name: "الشؤون الاجتماعية", NameEn: "Social Affairs", Category: CategorySocial, TargetCouncil: CouncilParliament, DefaultPriority: PriorityMedium, SLADays: 30, RequiresAttachments: false, DisplayOrder: 10},
}

// SenateComplaintTypes are the types handled by the upper chamber.
var SenateComplaintTypes = []ComplaintTypeSeed{
	{Name: "القوانين والتشريعات", NameEn: "Laws and Legislation", Category: CategoryLegislation, TargetCouncil: CouncilSenate, DefaultPriority: PriorityMedium, SLADays: 90, RequiresAttachments: false, DisplayOrder: 11},
	{Name: "الشؤون الدستورية", NameEn: "Constitutional Affairs", Category: CategoryConstitutional, TargetCouncil: CouncilSenate, DefaultPriority: PriorityLow, SLADays: 120, RequiresAttachments: false, DisplayOrder: 12},
	{Name: "السياسة الخارجية", NameEn: "Foreign Policy", Category: CategoryForeignPolicy, TargetCouncil: CouncilSenate, DefaultPriority: PriorityMedium, SLADays: 60, RequiresAttachments: false, DisplayOrder: 13},
	{Name: "الشؤون الاقتصادية", NameEn: "Economic Affairs", Category: CategoryEconomic, TargetCouncil: CouncilSenate, DefaultPriority: PriorityHigh, SLADays: 75, RequiresAttachments: false, DisplayOrder: 14},
}

// AllComplaintTypeSeeds returns the full catalog, both chambers.
func AllComplaintTypeSeeds() []ComplaintTypeSeed {
	out := make([]ComplaintTypeSeed, 0, len(ParliamentComplaintTypes)+len(SenateComplaintTypes))
	out = append(out, ParliamentComplaintTypes...)
	out = append(out, SenateComplaintTypes...)
	return out
}
