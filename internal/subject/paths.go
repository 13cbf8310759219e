package subject

// Conventional URL paths where public funds and endowments publish their
// organization, investment, policy, and reporting pages. Guessed paths rank
// below explicit and search-discovered URLs; a 404 on any of them is routine.

// AboutPaths covers organization overviews and staff/board rosters.
var AboutPaths = []string{
	"/about",
	"/about-us",
	"/who-we-are",
	"/our-story",
	"/company",
	"/overview",
	"/mission",
	"/what-we-do",
	"/organization",
	"/organization-overview",
	"/team",
	"/our-team",
	"/leadership",
	"/management",
	"/executive-team",
	"/board",
	"/board-of-trustees",
	"/board-of-directors",
	"/staff",
	"/people",
	"/investment-team",
	"/investments-team",
	"/investment-office",
	"/investment-committee",
}

// InvestmentPaths covers portfolio and asset-class pages.
var InvestmentPaths = []string{
	"/investments",
	"/investment",
	"/investment-office",
	"/investment-division",
	"/investment-department",
	"/portfolio",
	"/fund-portfolio",
	"/investment-portfolio",
	"/portfolio-overview",
	"/holdings",
	"/strategy",
	"/investment-strategy",
	"/asset-allocation",
	"/assetallocation",
	"/allocations",
	"/investment-philosophy",
	"/alternatives",
	"/real-assets",
	"/private-equity",
	"/private-markets",
	"/real-estate",
	"/hedge-funds",
	"/credit",
	"/private-credit",
	"/infrastructure",
	"/natural-resources",
	"/direct-investing",
	"/direct-investments",
	"/co-invest",
	"/co-investments",
	"/coinvest",
	"/coinvestments",
}

// PolicyPaths covers investment policy statements, governance, and manager
// search programs.
var PolicyPaths = []string{
	"/investment-policy",
	"/ips",
	"/investment-policy-statement",
	"/investment-guidelines",
	"/investment-principles",
	"/investment-committee",
	"/committees",
	"/governance",
	"/oversight",
	"/policies",
	"/rfp",
	"/requests-for-proposals",
	"/vendor-opportunities",
	"/manager-search",
	"/emerging-manager",
	"/emerging-managers",
	"/em-program",
	"/small-manager",
	"/diverse-manager",
}

// ReportPaths covers annual and periodic reporting pages, which commonly link
// the PDFs this pipeline wants most.
var ReportPaths = []string{
	"/annual-report",
	"/annualreports",
	"/reports",
	"/financial-reports",
	"/financials",
	"/publications",
	"/cafr",
	"/cafrs",
	"/audit-reports",
	"/actuarial-reports",
	"/monthly-report",
	"/quarterly-report",
	"/investment-reports",
	"/performance-reports",
	"/market-commentary",
	"/meetings",
	"/board-meetings",
	"/committee-meetings",
	"/minutes",
	"/agendas",
}
