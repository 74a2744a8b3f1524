package config

// defaultTemplate is the built-in scenario: a mid-size B2B SaaS company
// with six months of workspace history.
const defaultTemplate = `company:
  name: TechFlow Solutions
  domain: techflow.com

scale:
  users: 150
  teams:
    - {type: engineering, count: 6}
    - {type: product, count: 2}
    - {type: marketing, count: 3}
    - {type: operations, count: 2}
    - {type: sales, count: 2}
  users_per_team_min: 5
  users_per_team_max: 12
  projects_per_team_min: 5
  projects_per_team_max: 10
  tasks_per_project_min: 15
  tasks_per_project_max: 40
  subtasks_per_task_min: 2
  subtasks_per_task_max: 5

dates:
  history_days: 180
  sprint_duration_days: 14

probabilities:
  unassigned: 0.15
  subtasks: 0.30
  tags: 0.40
  attachments: 0.25
  comments: 0.60
  avoid_weekend_due: 0.85
  complete_before_due: 0.80
  due_date:
    overdue: 0.05
    week: 0.25
    month: 0.40
    quarter: 0.20
    none: 0.10
  roles:
    - {key: admin, weight: 0.05}
    - {key: guest, weight: 0.05}
    - {key: member, weight: 0.90}
  priority:
    - {key: high, weight: 0.15}
    - {key: medium, weight: 0.35}
    - {key: low, weight: 0.20}
    - {key: "", weight: 0.30}
  completion_time_mean: 7
  completion_time_stddev: 5

comments_per_task_min: 1
comments_per_task_max: 5
tags_per_task_max: 2

project_types:
  sprint:
    sections: [Backlog, To Do, In Progress, In Review, Done]
    custom_fields:
      - {name: Story Points, type: number}
      - {name: Sprint, type: enum, options: [Sprint 1, Sprint 2, Sprint 3, Sprint 4]}
      - {name: Component, type: enum, options: [Frontend, Backend, Database, API, Infrastructure]}
    completion_low: 0.70
    completion_high: 0.85
  kanban:
    sections: [Backlog, To Do, In Progress, Review, Done]
    custom_fields:
      - {name: Priority, type: enum, options: [P0, P1, P2, P3]}
      - {name: Effort, type: enum, options: [Small, Medium, Large, XL]}
    completion_low: 0.60
    completion_high: 0.75
  campaign:
    sections: [Ideation, Planning, Creative, Execution, Review, Completed]
    custom_fields:
      - {name: Campaign, type: enum, options: [Q1 Launch, Product Update, Brand Awareness, Lead Gen]}
      - {name: Channel, type: enum, options: [Social Media, Email, Content, Paid Ads, Events]}
      - {name: Budget, type: number}
    completion_low: 0.75
    completion_high: 0.85
  ongoing:
    sections: [Requested, To Do, In Progress, Done]
    custom_fields:
      - {name: Department, type: enum, options: [Engineering, Marketing, Sales, Operations, Product]}
      - {name: Urgency, type: enum, options: [Critical, High, Normal, Low]}
    completion_low: 0.40
    completion_high: 0.50

project_types_by_team:
  engineering: [sprint, kanban]
  product: [sprint, ongoing]
  marketing: [campaign, ongoing]
  operations: [kanban, ongoing]
  sales: [kanban, ongoing]

content:
  first_names: [Amit, Neha, Rahul, Priya, Ankit, Sneha, Vikas, Pooja]
  last_names: [Sharma, Verma, Patel, Singh, Iyer, Gupta]
  team_names:
    engineering: [Backend Platform, Frontend Experience, Infrastructure, Data Engineering, API Services, Quality Engineering]
    product: [Product Strategy, User Experience, Growth Product]
    marketing: [Growth Marketing, Brand Marketing, Content Marketing]
    operations: [Customer Operations, Internal Operations]
    sales: [Enterprise Sales, SMB Sales]
  project_name_templates:
    sprint: ["Sprint {n} - Core Platform", "Sprint {n} - Feature Delivery", "Sprint {n} - Stability Improvements"]
    kanban: [Bug Tracking Board, Technical Debt Backlog, Operational Requests]
    campaign: ["Q{n} Product Launch", Brand Awareness Campaign, Lead Generation Campaign]
    ongoing: [Product Roadmap, Customer Requests, Internal Improvements]
  task_name_templates:
    engineering:
      - "Implement {feature} for {component}"
      - "Fix {issue} in {component}"
      - "Refactor {component} - {reason}"
      - "{component} - Improve performance"
    marketing:
      - "Create {asset} for {campaign}"
      - "{campaign} - Publish content"
      - "Design {asset} for {channel}"
      - "{campaign} - Launch execution"
    product:
      - "Define requirements for {feature}"
      - "User testing - {feature}"
      - "Roadmap planning for {feature}"
      - "Analyze feedback for {feature}"
    operations:
      - "Optimize {process}"
      - "Document {process}"
      - "Setup {tool} for team"
      - "{process} - Process improvement"
    sales:
      - "Follow up with {prospect}"
      - "Prepare proposal for {prospect}"
      - "Pipeline review - {stage}"
      - "Customer outreach"
  comment_templates:
    - Moving this to In Progress.
    - Any updates on this?
    - Blocking issue identified, investigating.
    - Looks good to me.
    - Please review when you get a chance.
    - This is now complete.
    - Adding more context here.
    - Assigning this to the appropriate owner.
  tags:
    - {name: urgent, color: red}
    - {name: blocked, color: red}
    - {name: needs-review, color: orange}
    - {name: bug, color: red}
    - {name: enhancement, color: blue}
    - {name: documentation, color: gray}
    - {name: technical-debt, color: yellow}
    - {name: customer-request, color: green}
    - {name: quick-win, color: green}
    - {name: research, color: purple}
    - {name: dependencies, color: orange}
    - {name: milestone, color: blue}
    - {name: on-hold, color: gray}
    - {name: high-priority, color: red}
    - {name: low-priority, color: gray}

llm:
  enabled: false
  base_url: https://api.anthropic.com
  model: claude-sonnet-4-20250514
  max_tokens: 1000
  temperature: 0.8
  retries: 3
  retry_delay: 1.5s

logging:
  level: info
  environment: development
`
