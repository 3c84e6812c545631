package outbox

const activityCreatedSchema = `{
  "type": "object",
  "title": "ActivityCreated",
  "properties": {
    "activity_id": {"type": "string"},
    "user_id": {"type": "string"},
    "category": {"type": "string"},
    "start_time": {"type": "string", "format": "date-time"},
    "end_time": {"type": "string", "format": "date-time"},
    "version": {"type": "string"}
  },
  "required": ["activity_id", "user_id", "category", "start_time", "end_time", "version"],
  "additionalProperties": false
}`

const habitLoggedSchema = `{
  "type": "object",
  "title": "HabitLogged",
  "properties": {
    "habit_id": {"type": "string"},
    "user_id": {"type": "string"},
    "date": {"type": "string", "format": "date"},
    "completed": {"type": "boolean"},
    "logged_at": {"type": "string", "format": "date-time"}
  },
  "required": ["habit_id", "user_id", "date", "completed", "logged_at"],
  "additionalProperties": false
}`
