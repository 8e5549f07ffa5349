package seed

type city struct {
	Name string
	Lat  float64
	Lng  float64
	Zip  string
}

var minnesotaCities = []city{
	{"Minneapolis", 44.9778, -93.2650, "55401"},
	{"Saint Paul", 44.9537, -93.0900, "55102"},
	{"Rochester", 44.0121, -92.4802, "55901"},
	{"Duluth", 46.7867, -92.1005, "55802"},
	{"Bloomington", 44.8408, -93.2982, "55425"},
	{"Brooklyn Park", 45.0941, -93.3563, "55443"},
	{"Plymouth", 45.0105, -93.4555, "55447"},
	{"Saint Cloud", 45.5608, -94.1624, "56301"},
	{"Eagan", 44.8041, -93.1668, "55121"},
	{"Woodbury", 44.9239, -92.9594, "55125"},
	{"Maple Grove", 45.0725, -93.4557, "55369"},
	{"Eden Prairie", 44.8547, -93.4708, "55344"},
	{"Coon Rapids", 45.1200, -93.3030, "55433"},
	{"Burnsville", 44.7678, -93.2777, "55337"},
	{"Minnetonka", 44.9211, -93.4688, "55305"},
}

type specialization struct {
	Name        string
	Description string
}

var specializations = []specialization{
	{"Pediatric Therapy", "Specialized care for children and adolescents"},
	{"Hand Therapy", "Treatment for hand, wrist, and upper extremity conditions"},
	{"Neurological Rehabilitation", "Recovery support for stroke, brain injury, and neurological conditions"},
	{"Mental Health", "Occupational therapy for mental health and wellness"},
	{"Geriatric Care", "Specialized therapy for older adults"},
	{"Sensory Integration", "Treatment for sensory processing disorders"},
	{"Work Rehabilitation", "Return-to-work and ergonomic assessments"},
	{"Autism Spectrum", "Specialized support for individuals with autism"},
	{"Physical Rehabilitation", "Recovery from injuries and physical impairments"},
	{"Cognitive Therapy", "Support for cognitive and executive functioning"},
}

type therapist struct {
	FirstName         string
	LastName          string
	LicenseNumber     string
	Phone             string
	Bio               string
	YearsOfExperience int
	Specializations   []string
}

var therapists = []therapist{
	{
		FirstName: "Sarah", LastName: "Johnson", LicenseNumber: "OT001234", Phone: "612-555-0101",
		Bio:               "Experienced pediatric occupational therapist with over 10 years helping children reach their developmental goals. Specializes in sensory integration and autism spectrum support.",
		YearsOfExperience: 10,
		Specializations:   []string{"Pediatric Therapy", "Sensory Integration", "Autism Spectrum"},
	},
	{
		FirstName: "Michael", LastName: "Chen", LicenseNumber: "OT001235", Phone: "651-555-0102",
		Bio:               "Hand therapy specialist with expertise in post-surgical rehabilitation and ergonomic assessments. Certified Hand Therapist (CHT) with 8 years of experience.",
		YearsOfExperience: 8,
		Specializations:   []string{"Hand Therapy", "Work Rehabilitation", "Physical Rehabilitation"},
	},
	{
		FirstName: "Emily", LastName: "Rodriguez", LicenseNumber: "OT001236", Phone: "507-555-0103",
		Bio:               "Neurological rehabilitation expert helping stroke and brain injury survivors regain independence. Passionate about evidence-based practice.",
		YearsOfExperience: 12,
		Specializations:   []string{"Neurological Rehabilitation", "Physical Rehabilitation", "Cognitive Therapy"},
	},
	{
		FirstName: "David", LastName: "Thompson", LicenseNumber: "OT001237", Phone: "218-555-0104",
		Bio:               "Mental health occupational therapist focused on helping individuals develop coping strategies and life skills for improved well-being.",
		YearsOfExperience: 6,
		Specializations:   []string{"Mental Health", "Cognitive Therapy"},
	},
	{
		FirstName: "Lisa", LastName: "Anderson", LicenseNumber: "OT001238", Phone: "952-555-0105",
		Bio:               "Geriatric specialist with extensive experience in fall prevention, home safety assessments, and maintaining independence in older adults.",
		YearsOfExperience: 15,
		Specializations:   []string{"Geriatric Care", "Physical Rehabilitation"},
	},
	{
		FirstName: "James", LastName: "Wilson", LicenseNumber: "OT001239", Phone: "763-555-0106",
		Bio:               "Pediatric OT specializing in early intervention and school-based therapy. Enjoys helping children develop the skills they need for daily activities.",
		YearsOfExperience: 7,
		Specializations:   []string{"Pediatric Therapy", "Sensory Integration"},
	},
	{
		FirstName: "Amanda", LastName: "Brown", LicenseNumber: "OT001240", Phone: "651-555-0107",
		Bio:               "Work rehabilitation specialist helping individuals return to work after injury. Certified in functional capacity evaluations and job site assessments.",
		YearsOfExperience: 9,
		Specializations:   []string{"Work Rehabilitation", "Physical Rehabilitation", "Hand Therapy"},
	},
	{
		FirstName: "Robert", LastName: "Davis", LicenseNumber: "OT001241", Phone: "612-555-0108",
		Bio:               "Experienced OT with a holistic approach to therapy. Specializes in helping individuals with autism develop life skills and independence.",
		YearsOfExperience: 11,
		Specializations:   []string{"Autism Spectrum", "Cognitive Therapy", "Mental Health"},
	},
	{
		FirstName: "Jennifer", LastName: "Garcia", LicenseNumber: "OT001242", Phone: "507-555-0109",
		Bio:               "Sensory integration specialist with advanced certification in Ayres Sensory Integration. Passionate about helping children process sensory information effectively.",
		YearsOfExperience: 8,
		Specializations:   []string{"Sensory Integration", "Pediatric Therapy"},
	},
	{
		FirstName: "Christopher", LastName: "Miller", LicenseNumber: "OT001243", Phone: "218-555-0110",
		Bio:               "Neurological rehabilitation therapist with expertise in stroke recovery and traumatic brain injury rehabilitation. Uses innovative technology in treatment.",
		YearsOfExperience: 10,
		Specializations:   []string{"Neurological Rehabilitation", "Cognitive Therapy", "Physical Rehabilitation"},
	},
	{
		FirstName: "Michelle", LastName: "Taylor", LicenseNumber: "OT001244", Phone: "952-555-0111",
		Bio:               "Geriatric occupational therapist focused on maintaining quality of life and independence. Specializes in dementia care and adaptive strategies.",
		YearsOfExperience: 13,
		Specializations:   []string{"Geriatric Care", "Cognitive Therapy"},
	},
	{
		FirstName: "Kevin", LastName: "White", LicenseNumber: "OT001245", Phone: "763-555-0112",
		Bio:               "Hand therapy and upper extremity specialist. Board-certified Hand Therapist with extensive post-surgical rehabilitation experience.",
		YearsOfExperience: 9,
		Specializations:   []string{"Hand Therapy", "Physical Rehabilitation"},
	},
	{
		FirstName: "Rachel", LastName: "Lewis", LicenseNumber: "OT001246", Phone: "651-555-0113",
		Bio:               "Mental health OT with training in cognitive behavioral therapy techniques. Helps individuals develop healthy routines and coping mechanisms.",
		YearsOfExperience: 5,
		Specializations:   []string{"Mental Health", "Cognitive Therapy"},
	},
	{
		FirstName: "Daniel", LastName: "Clark", LicenseNumber: "OT001247", Phone: "612-555-0114",
		Bio:               "Pediatric therapy specialist with expertise in feeding therapy and developmental delays. Creates fun, engaging therapy sessions for children.",
		YearsOfExperience: 8,
		Specializations:   []string{"Pediatric Therapy", "Sensory Integration"},
	},
	{
		FirstName: "Nicole", LastName: "Hall", LicenseNumber: "OT001248", Phone: "507-555-0115",
		Bio:               "Work rehabilitation and ergonomics expert. Helps employers and employees create safer, more productive work environments.",
		YearsOfExperience: 7,
		Specializations:   []string{"Work Rehabilitation", "Physical Rehabilitation"},
	},
}
