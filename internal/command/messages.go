package command

// User-visible messages.
const (
	MessageWelcome      = "Hello! I'm Sam, your personal assistant.\nWhat can I do for you?"
	MessageBye          = "Bye. Hope to see you again soon!"
	MessageListTasks    = "Here are the tasks in your list:"
	MessageFoundTasks   = "Here are the matching tasks in your list:"
	MessageAddTask      = "Got it. I've added this task:"
	MessageMarkTask     = "Nice! I've marked this task as done:"
	MessageUnmarkTask   = "OK, I've marked this task as not done yet:"
	MessageDeleteTask   = "Noted. I've removed this task:"
	MessageHelp         = "Here is what I can do:"
	MessageEmptyList    = "The task list is empty."
	MessageNoMatch      = "No tasks match %q."
	MessageFailedToSave = "Failed to save tasks: %v"

	// MessageInvalidFormat prefixes every rejected-input diagnostic.
	MessageInvalidFormat = "Invalid command format!"
)

// Command words.
const (
	WordTodo     = "todo"
	WordDeadline = "deadline"
	WordEvent    = "event"
	WordDelete   = "delete"
	WordMark     = "mark"
	WordUnmark   = "unmark"
	WordList     = "list"
	WordFind     = "find"
	WordHelp     = "help"
	WordExit     = "bye"
)

// Usage strings, one per command word.
const (
	UsageTodo = WordTodo + ": Adds a todo to the task list.\n" +
		"Parameters: DESCRIPTION\n" +
		"Example: " + WordTodo + " borrow books"
	UsageDeadline = WordDeadline + ": Adds a deadline to the task list.\n" +
		"Parameters: DESCRIPTION /by yyyy-MM-dd HHmm\n" +
		"Example: " + WordDeadline + " return homework /by 2023-11-15 0800"
	UsageEvent = WordEvent + ": Adds an event to the task list.\n" +
		"Parameters: DESCRIPTION /from yyyy-MM-dd HHmm /to yyyy-MM-dd HHmm\n" +
		"Example: " + WordEvent + " project meeting /from 2023-11-15 1400 /to 2023-11-15 1600"
	UsageDelete = WordDelete + ": Deletes the task identified by its index in the list.\n" +
		"Parameters: INDEX\n" +
		"Example: " + WordDelete + " 1"
	UsageMark = WordMark + ": Marks the task identified by its index as done.\n" +
		"Parameters: INDEX\n" +
		"Example: " + WordMark + " 1"
	UsageUnmark = WordUnmark + ": Marks the task identified by its index as not done.\n" +
		"Parameters: INDEX\n" +
		"Example: " + WordUnmark + " 1"
	UsageList = WordList + ": Lists the tasks in the task list.\n" +
		"Example: " + WordList
	UsageFind = WordFind + ": Finds tasks whose description contains the text.\n" +
		"Parameters: TEXT\n" +
		"Example: " + WordFind + " book"
	UsageHelp = WordHelp + ": Shows what each command does.\n" +
		"Example: " + WordHelp
	UsageExit = WordExit + ": Exits the program.\n" +
		"Example: " + WordExit
)

// Usages lists every usage string in the order help prints them.
var Usages = []string{
	UsageTodo,
	UsageDeadline,
	UsageEvent,
	UsageList,
	UsageFind,
	UsageMark,
	UsageUnmark,
	UsageDelete,
	UsageHelp,
	UsageExit,
}
